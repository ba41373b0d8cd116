package handler

import (
	"errors"
	"net/http"

	"z2b/internal/middleware"
	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MeHandler struct {
	auth     *service.AuthService
	referral *service.ReferralService
	log      *zap.Logger
}

func NewMeHandler(auth *service.AuthService, referral *service.ReferralService, log *zap.Logger) *MeHandler {
	return &MeHandler{auth: auth, referral: referral, log: log}
}

type UpdateProfileRequest struct {
	FullName       *string `json:"full_name" binding:"omitempty,max=255"`
	WhatsappNumber *string `json:"whatsapp_number" binding:"omitempty,max=32"`
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	if p := middleware.GetProfile(c); p != nil {
		c.JSON(http.StatusOK, p)
		return
	}
	p, err := h.auth.CurrentUser(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		internalError(c, h.log, "failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.auth.UpdateProfile(middleware.GetUserID(c), service.ProfileUpdate{
		FullName:       req.FullName,
		WhatsappNumber: req.WhatsappNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		internalError(c, h.log, "failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Dashboard godoc
// @Summary      Referral dashboard
// @Description  Profile, shareable referral URL, and click and conversion counts.
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.Dashboard
// @Router       /me/dashboard [get]
func (h *MeHandler) Dashboard(c *gin.Context) {
	d, err := h.referral.Dashboard(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		internalError(c, h.log, "failed to load dashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Access reports the member's access state. It is mounted without the status gate so blocked
// members can still read why.
func (h *MeHandler) Access(c *gin.Context) {
	p, err := h.auth.CurrentUser(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		internalError(c, h.log, "failed to check access", err)
		return
	}
	c.JSON(http.StatusOK, service.CheckMemberAccess(p.Status))
}
