package middleware

import (
	"errors"
	"net/http"

	"z2b/internal/models"
	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileLookup loads the current row for an authenticated user.
type ProfileLookup interface {
	GetByID(id string) (*models.Profile, error)
}

const profileKey = "profile"

// MemberAccess re-reads the member's status on every request so suspensions and deletions
// take effect immediately. Must run after AuthRequired.
func MemberAccess(profiles ProfileLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := loadProfile(c, profiles)
		if !ok {
			return
		}
		if access := service.CheckMemberAccess(p.Status); !access.HasAccess {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": access.Message, "status": access.Status})
			return
		}
		c.Next()
	}
}

// GetProfile returns the profile loaded by MemberAccess or AdminRequired.
func GetProfile(c *gin.Context) *models.Profile {
	v, ok := c.Get(profileKey)
	if !ok {
		return nil
	}
	p, _ := v.(*models.Profile)
	return p
}

func loadProfile(c *gin.Context, profiles ProfileLookup) (*models.Profile, bool) {
	if p := GetProfile(c); p != nil {
		return p, true
	}
	userID := GetUserID(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	p, err := profiles.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return nil, false
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return nil, false
	}
	c.Set(profileKey, p)
	return p, true
}
