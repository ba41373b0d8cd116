package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks is_admin against the database rather than trusting token claims.
func AdminRequired(profiles ProfileLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := loadProfile(c, profiles)
		if !ok {
			return
		}
		if !p.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
