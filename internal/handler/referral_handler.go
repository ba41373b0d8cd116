package handler

import (
	"net/http"

	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReferralHandler struct {
	svc *service.ReferralService
	log *zap.Logger
}

func NewReferralHandler(svc *service.ReferralService, log *zap.Logger) *ReferralHandler {
	return &ReferralHandler{svc: svc, log: log}
}

type TrackClickRequest struct {
	Code      string `json:"code" binding:"required"`
	ContentID string `json:"content_id"`
}

// TrackClick godoc
// @Summary      Record a referral link visit
// @Description  Records one click for the owner of the code and returns a click token to send with signup. Unknown codes return tracked=false.
// @Tags         referrals
// @Accept       json
// @Produce      json
// @Param        request body TrackClickRequest true "Referral code"
// @Success      200  {object}  service.ClickResult
// @Router       /referrals/clicks [post]
func (h *ReferralHandler) TrackClick(c *gin.Context) {
	var req TrackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.TrackClick(c.Request.Context(), req.Code, req.ContentID, requestMeta(c))
	if err != nil {
		// Click tracking never blocks the visitor.
		h.log.Warn("referral click not recorded", zap.String("code", req.Code), zap.Error(err))
		c.JSON(http.StatusOK, service.ClickResult{})
		return
	}
	c.JSON(http.StatusOK, res)
}
