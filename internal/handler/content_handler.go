package handler

import (
	"errors"
	"net/http"

	"z2b/internal/middleware"
	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContentHandler struct {
	svc *service.ContentService
	log *zap.Logger
}

func NewContentHandler(svc *service.ContentService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, log: log}
}

type CreateContentRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description"`
	Type         string `json:"type" binding:"required,oneof=video audio pdf"`
	FileURL      string `json:"file_url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublic     *bool  `json:"is_public"`
	Duration     *int   `json:"duration" binding:"omitempty,min=0"`
}

// List godoc
// @Summary      List library content
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        type query string false "Filter by type" Enums(video, audio, pdf)
// @Success      200  {object}  map[string]interface{}
// @Router       /content [get]
func (h *ContentHandler) List(c *gin.Context) {
	contentType := c.Query("type")
	switch contentType {
	case "", "video", "audio", "pdf":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be video, audio or pdf"})
		return
	}
	list, err := h.svc.List(contentType)
	if err != nil {
		internalError(c, h.log, "failed to list content", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// Get serves one item. Anonymous visitors only see public content.
func (h *ContentHandler) Get(c *gin.Context) {
	view, err := h.svc.Get(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		if abortAccessDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		case errors.Is(err, service.ErrLoginRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			internalError(c, h.log, "failed to load content", err)
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ContentHandler) AdminList(c *gin.Context) {
	list, err := h.svc.List("")
	if err != nil {
		internalError(c, h.log, "failed to list content", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *ContentHandler) Create(c *gin.Context) {
	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	public := true
	if req.IsPublic != nil {
		public = *req.IsPublic
	}
	item, err := h.svc.Create(c.Request.Context(), middleware.GetUserID(c), service.ContentInput{
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
		IsPublic:     public,
		Duration:     req.Duration,
	}, requestMeta(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "failed to create content", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) ToggleVisibility(c *gin.Context) {
	item, err := h.svc.ToggleVisibility(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			return
		}
		internalError(c, h.log, "failed to update content", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), requestMeta(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			return
		}
		internalError(c, h.log, "failed to delete content", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
