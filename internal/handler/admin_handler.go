package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"z2b/internal/middleware"
	"z2b/internal/repository"
	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	admin    *service.AdminService
	referral *service.ReferralService
	feed     *service.FeedService
	log      *zap.Logger
}

func NewAdminHandler(admin *service.AdminService, referral *service.ReferralService, feed *service.FeedService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, referral: referral, feed: feed, log: log}
}

type MemberActionRequest struct {
	Action string `json:"action" binding:"required,oneof=activate suspend delete upgrade"`
}

type WorkshopQuestionRequest struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type DailyExerciseRequest struct {
	ExerciseTitle string     `json:"exercise_title"`
	Instructions  string     `json:"instructions"`
	Deadline      *time.Time `json:"deadline"`
}

type CreateWorkshopRequest struct {
	Title        string                    `json:"title" binding:"required,max=255"`
	Content      string                    `json:"content"`
	ContentType  string                    `json:"content_type" binding:"omitempty,oneof=text image pdf audio video"`
	MediaURL     string                    `json:"media_url"`
	ThumbnailURL string                    `json:"thumbnail_url"`
	IsPublic     *bool                     `json:"is_public"`
	IsWorkshop   bool                      `json:"is_workshop"`
	Questions    []WorkshopQuestionRequest `json:"questions"`
	Exercises    []DailyExerciseRequest    `json:"exercises"`
}

func memberFilter(c *gin.Context) repository.MemberFilter {
	return repository.MemberFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Membership: c.Query("membership"),
	}
}

// ListMembers handles GET /admin/members.
func (h *AdminHandler) ListMembers(c *gin.Context) {
	list, stats, err := h.admin.ListMembers(memberFilter(c))
	if err != nil {
		internalError(c, h.log, "failed to list members", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "stats": stats})
}

// ExportMembers godoc
// @Summary      Export members as CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        search     query string false "Search email, name or referral code"
// @Param        status     query string false "Status filter"
// @Param        membership query string false "Membership filter"
// @Success      200  {file}  file
// @Router       /admin/members/export [get]
func (h *AdminHandler) ExportMembers(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.admin.ExportMembers(&buf, memberFilter(c)); err != nil {
		internalError(c, h.log, "failed to export members", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.MembersCSVFilename(time.Now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// MemberAction godoc
// @Summary      Change a member's status or membership
// @Description  activate, suspend and delete set the status; upgrade makes the membership paid for 365 days from now.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string              true "Member ID"
// @Param        request body MemberActionRequest true "Action"
// @Success      200  {object}  models.Profile
// @Failure      404  {object}  map[string]string
// @Router       /admin/members/{id}/actions [post]
func (h *AdminHandler) MemberAction(c *gin.Context) {
	var req MemberActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.admin.ApplyMemberAction(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Action, requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		default:
			internalError(c, h.log, "failed to update member", err)
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) MemberHistory(c *gin.Context) {
	list, err := h.admin.MemberHistory(c.Param("id"))
	if err != nil {
		internalError(c, h.log, "failed to load history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// CreateWorkshop handles POST /admin/workshops.
func (h *AdminHandler) CreateWorkshop(c *gin.Context) {
	var req CreateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.WorkshopInput{
		Title:        req.Title,
		Content:      req.Content,
		ContentType:  req.ContentType,
		MediaURL:     req.MediaURL,
		ThumbnailURL: req.ThumbnailURL,
		IsPublic:     req.IsPublic == nil || *req.IsPublic,
		IsWorkshop:   req.IsWorkshop,
	}
	for _, q := range req.Questions {
		in.Questions = append(in.Questions, service.QuestionInput{Question: q.Question, Options: q.Options, CorrectAnswer: q.CorrectAnswer})
	}
	for _, e := range req.Exercises {
		in.Exercises = append(in.Exercises, service.ExerciseInput{Title: e.ExerciseTitle, Instructions: e.Instructions, Deadline: e.Deadline})
	}
	post, err := h.feed.CreateWorkshop(c.Request.Context(), middleware.GetUserID(c), in, requestMeta(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPost) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "failed to create workshop", err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Referrals handles GET /admin/referrals. search narrows the leaderboard but not the stats.
func (h *AdminHandler) Referrals(c *gin.Context) {
	board, stats, err := h.admin.ReferralReport(c.Query("search"))
	if err != nil {
		internalError(c, h.log, "failed to load referrals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board, "stats": stats})
}

// ExportReferrals godoc
// @Summary      Export the referral leaderboard as CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        search query string false "Search email, name or referral code"
// @Success      200  {file}  file
// @Router       /admin/referrals/export [get]
func (h *AdminHandler) ExportReferrals(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.admin.ExportReferrals(&buf, c.Query("search")); err != nil {
		internalError(c, h.log, "failed to export referrals", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.ReferralsCSVFilename(time.Now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *AdminHandler) ReferralTree(c *gin.Context) {
	member, referrals, err := h.referral.Tree(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "referral code not found"})
			return
		}
		internalError(c, h.log, "failed to load referral tree", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member, "referrals": referrals})
}
