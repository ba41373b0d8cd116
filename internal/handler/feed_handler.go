package handler

import (
	"errors"
	"net/http"

	"z2b/internal/middleware"
	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedHandler struct {
	svc *service.FeedService
	log *zap.Logger
}

func NewFeedHandler(svc *service.FeedService, log *zap.Logger) *FeedHandler {
	return &FeedHandler{svc: svc, log: log}
}

type ReactionRequest struct {
	ReactionType string `json:"reaction_type" binding:"required,oneof=like love celebrate insightful"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required,max=5000"`
}

// ListPosts godoc
// @Summary      Workshop feed
// @Description  Public posts, newest first, with author name, reaction counts per type and comment count.
// @Tags         feed
// @Produce      json
// @Param        page  query int false "Page"
// @Param        limit query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Router       /feed/posts [get]
func (h *FeedHandler) ListPosts(c *gin.Context) {
	page, limit := parsePagination(c)
	posts, err := h.svc.ListPosts(limit, (page-1)*limit)
	if err != nil {
		internalError(c, h.log, "failed to load feed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts, "page": page, "limit": limit})
}

func (h *FeedHandler) Workshop(c *gin.Context) {
	w, err := h.svc.Workshop(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		h.postError(c, err, "failed to load workshop")
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *FeedHandler) Reactions(c *gin.Context) {
	list, err := h.svc.Reactions(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		h.postError(c, err, "failed to load reactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// React toggles the caller's reaction on a post.
func (h *FeedHandler) React(c *gin.Context) {
	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.ToggleReaction(c.Param("id"), middleware.GetUserID(c), req.ReactionType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReaction) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.postError(c, err, "failed to update reaction")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FeedHandler) Comments(c *gin.Context) {
	list, err := h.svc.Comments(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		h.postError(c, err, "failed to load comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *FeedHandler) Comment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := h.svc.AddComment(c.Param("id"), middleware.GetUserID(c), req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrEmptyComment) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.postError(c, err, "failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *FeedHandler) postError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	internalError(c, h.log, msg, err)
}
