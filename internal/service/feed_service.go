package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"z2b/internal/domain"
	"z2b/internal/models"
	"z2b/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrInvalidReaction = errors.New("reaction_type must be like, love, celebrate or insightful")
	ErrEmptyComment    = errors.New("comment cannot be empty")
	ErrInvalidPost     = errors.New("title and a valid content_type are required")
)

// Broadcaster pushes live feed events to connected clients.
type Broadcaster interface {
	Broadcast(eventType string, data interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, interface{}) {}

type QuestionInput struct {
	Question      string
	Options       []string
	CorrectAnswer string
}

type ExerciseInput struct {
	Title        string
	Instructions string
	Deadline     *time.Time
}

type WorkshopInput struct {
	Title        string
	Content      string
	ContentType  string
	MediaURL     string
	ThumbnailURL string
	IsPublic     bool
	IsWorkshop   bool
	Questions    []QuestionInput
	Exercises    []ExerciseInput
}

// ReactionResult reports what a toggle did: "added", "changed" or "removed".
type ReactionResult struct {
	Outcome      string `json:"outcome"`
	ReactionType string `json:"reaction_type,omitempty"`
}

const (
	ReactionAdded   = "added"
	ReactionChanged = "changed"
	ReactionRemoved = "removed"
)

type WorkshopView struct {
	Questions []models.WorkshopQuestion `json:"questions"`
	Exercises []models.DailyExercise    `json:"exercises"`
}

type FeedService struct {
	db       *gorm.DB
	posts    *repository.PostRepository
	profiles *repository.ProfileRepository
	audit    *AuditService
	hub      Broadcaster
}

func NewFeedService(
	db *gorm.DB,
	posts *repository.PostRepository,
	profiles *repository.ProfileRepository,
	audit *AuditService,
	hub Broadcaster,
) *FeedService {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	return &FeedService{db: db, posts: posts, profiles: profiles, audit: audit, hub: hub}
}

func (s *FeedService) ListPosts(limit, offset int) ([]repository.FeedPost, error) {
	return s.posts.ListPublic(limit, offset)
}

// Workshop returns the questions and exercises of a post visible to viewerID.
func (s *FeedService) Workshop(postID, viewerID string) (*WorkshopView, error) {
	if _, err := s.visiblePost(postID, viewerID); err != nil {
		return nil, err
	}
	qs, err := s.posts.ListQuestions(postID)
	if err != nil {
		return nil, err
	}
	es, err := s.posts.ListExercises(postID)
	if err != nil {
		return nil, err
	}
	return &WorkshopView{Questions: qs, Exercises: es}, nil
}

func (s *FeedService) Reactions(postID, viewerID string) ([]models.PostReaction, error) {
	if _, err := s.visiblePost(postID, viewerID); err != nil {
		return nil, err
	}
	return s.posts.ListReactions(postID)
}

// ToggleReaction applies a member's reaction: the same type again removes it, a different type
// replaces it, and no prior reaction inserts one.
func (s *FeedService) ToggleReaction(postID, userID, reactionType string) (*ReactionResult, error) {
	if !validReaction(reactionType) {
		return nil, ErrInvalidReaction
	}
	if _, err := s.getPost(postID); err != nil {
		return nil, err
	}
	res, err := s.toggle(postID, userID, reactionType)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost an insert race with another request from the same member; apply on top of it.
		res, err = s.toggle(postID, userID, reactionType)
	}
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(domain.FeedReactionChanged, map[string]interface{}{
		"post_id":       postID,
		"user_id":       userID,
		"outcome":       res.Outcome,
		"reaction_type": res.ReactionType,
	})
	return res, nil
}

func (s *FeedService) toggle(postID, userID, reactionType string) (*ReactionResult, error) {
	existing, err := s.posts.GetReaction(postID, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pr := &models.PostReaction{PostID: postID, UserID: userID, ReactionType: reactionType}
		if err := s.posts.CreateReaction(pr); err != nil {
			return nil, err
		}
		return &ReactionResult{Outcome: ReactionAdded, ReactionType: reactionType}, nil
	case err != nil:
		return nil, err
	case existing.ReactionType == reactionType:
		if err := s.posts.DeleteReaction(existing.ID); err != nil {
			return nil, err
		}
		return &ReactionResult{Outcome: ReactionRemoved}, nil
	default:
		if err := s.posts.UpdateReactionType(existing.ID, reactionType); err != nil {
			return nil, err
		}
		return &ReactionResult{Outcome: ReactionChanged, ReactionType: reactionType}, nil
	}
}

func (s *FeedService) Comments(postID, viewerID string) ([]repository.CommentView, error) {
	if _, err := s.visiblePost(postID, viewerID); err != nil {
		return nil, err
	}
	return s.posts.ListComments(postID)
}

func (s *FeedService) AddComment(postID, userID, text string) (*models.PostComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.getPost(postID); err != nil {
		return nil, err
	}
	c := &models.PostComment{PostID: postID, UserID: userID, Comment: text}
	if err := s.posts.CreateComment(c); err != nil {
		return nil, err
	}
	s.hub.Broadcast(domain.FeedCommentCreated, c)
	return c, nil
}

// CreateWorkshop writes a post with its questions and exercises in one transaction. Blank
// questions, options and exercise titles are dropped and order_index follows the kept order.
// Questions and exercises are only attached to workshop posts.
func (s *FeedService) CreateWorkshop(ctx context.Context, actorID string, in WorkshopInput, meta RequestMeta) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.ContentType == "" {
		in.ContentType = domain.PostTypeText
	}
	if in.Title == "" || !validPostType(in.ContentType) {
		return nil, ErrInvalidPost
	}
	post := &models.Post{
		UserID:      actorID,
		ContentType: in.ContentType,
		Title:       in.Title,
		Content:     in.Content,
		IsPublic:    in.IsPublic,
		IsWorkshop:  in.IsWorkshop,
	}
	if u := strings.TrimSpace(in.MediaURL); u != "" {
		post.MediaURL = &u
	}
	if u := strings.TrimSpace(in.ThumbnailURL); u != "" {
		post.ThumbnailURL = &u
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		if err := posts.Create(post); err != nil {
			return err
		}
		if !in.IsWorkshop {
			return nil
		}
		post.Questions = buildQuestions(post.ID, in.Questions)
		if err := posts.CreateQuestions(post.Questions); err != nil {
			return err
		}
		post.Exercises = buildExercises(post.ID, in.Exercises)
		return posts.CreateExercises(post.Exercises)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, meta, AuditEntry{
		ActorID:    actorID,
		Action:     domain.EventWorkshopCreated,
		Resource:   "post",
		ResourceID: post.ID,
		Metadata: map[string]interface{}{
			"questions": len(post.Questions),
			"exercises": len(post.Exercises),
		},
	})
	if post.IsPublic {
		s.hub.Broadcast(domain.FeedPostCreated, post)
	}
	return post, nil
}

func buildQuestions(postID string, in []QuestionInput) []models.WorkshopQuestion {
	out := make([]models.WorkshopQuestion, 0, len(in))
	for _, q := range in {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		opts := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			if o = strings.TrimSpace(o); o != "" {
				opts = append(opts, o)
			}
		}
		out = append(out, models.WorkshopQuestion{
			PostID:        postID,
			Question:      text,
			Options:       datatypes.JSONSlice[string](opts),
			CorrectAnswer: strings.TrimSpace(q.CorrectAnswer),
			OrderIndex:    len(out),
		})
	}
	return out
}

func buildExercises(postID string, in []ExerciseInput) []models.DailyExercise {
	out := make([]models.DailyExercise, 0, len(in))
	for _, e := range in {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			continue
		}
		out = append(out, models.DailyExercise{
			PostID:        postID,
			ExerciseTitle: title,
			Instructions:  strings.TrimSpace(e.Instructions),
			Deadline:      e.Deadline,
		})
	}
	return out
}

func (s *FeedService) getPost(id string) (*models.Post, error) {
	p, err := s.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// visiblePost loads a post for a read. Members-only posts read as missing unless viewerID is
// an admin or a member with access.
func (s *FeedService) visiblePost(id, viewerID string) (*models.Post, error) {
	p, err := s.getPost(id)
	if err != nil || p.IsPublic {
		return p, err
	}
	if viewerID == "" {
		return nil, ErrNotFound
	}
	viewer, err := s.profiles.GetByID(viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !viewer.IsAdmin && !CheckMemberAccess(viewer.Status).HasAccess {
		return nil, ErrNotFound
	}
	return p, nil
}

func validReaction(t string) bool {
	for _, r := range domain.ReactionTypes {
		if r == t {
			return true
		}
	}
	return false
}

func validPostType(t string) bool {
	switch t {
	case domain.PostTypeText, domain.PostTypeImage, domain.PostTypePDF, domain.PostTypeAudio, domain.PostTypeVideo:
		return true
	}
	return false
}
