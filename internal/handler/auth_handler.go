package handler

import (
	"errors"
	"net/http"

	"z2b/internal/middleware"
	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type SignupRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	FullName       string `json:"full_name" binding:"max=255"`
	WhatsappNumber string `json:"whatsapp_number" binding:"max=32"`
	ReferralCode   string `json:"referral_code"` // optional: inviter's code from ?ref=
	ClickToken     string `json:"click_token"`   // optional: returned by POST /referrals/clicks
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Signup godoc
// @Summary      Create an account
// @Description  Creates a profile with a fresh referral code. An optional referral code and click token attribute the signup to an inviter.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, tokens, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		WhatsappNumber: req.WhatsappNumber,
		ReferralCode:   req.ReferralCode,
		ClickToken:     req.ClickToken,
	}, requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrReferralCodeExhausted):
			h.log.Error("signup failed", zap.String("email", req.Email), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			internalError(c, h.log, "registration failed", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":          p,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

// Login godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, tokens, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if abortAccessDenied(c, err) {
			return
		}
		internalError(c, h.log, "login failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          p,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tokens, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		if abortAccessDenied(c, err) {
			return
		}
		internalError(c, h.log, "refresh failed", err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.svc.Logout(c.Request.Context(), middleware.GetUserID(c), requestMeta(c))
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// User returns the identity behind the access token.
func (h *AuthHandler) User(c *gin.Context) {
	p, err := h.svc.CurrentUser(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		internalError(c, h.log, "failed to load user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID, "email": p.Email})
}
