package service

import (
	"context"
	"errors"
	"strings"

	"z2b/config"
	"z2b/internal/domain"
	"z2b/internal/models"
	"z2b/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrInvalidContent = errors.New("title, type and file_url are required; type must be video, audio or pdf")
	ErrLoginRequired  = errors.New("login required")
)

type ContentInput struct {
	Title        string
	Description  string
	Type         string
	FileURL      string
	ThumbnailURL string
	IsPublic     bool
	Duration     *int
}

// ContentView is a content item as seen by one viewer. ShareURL is set for signed-in viewers.
type ContentView struct {
	*models.Content
	ShareURL string `json:"share_url,omitempty"`
}

type ContentService struct {
	cfg      *config.Config
	content  *repository.ContentRepository
	profiles *repository.ProfileRepository
	audit    *AuditService
}

func NewContentService(
	cfg *config.Config,
	content *repository.ContentRepository,
	profiles *repository.ProfileRepository,
	audit *AuditService,
) *ContentService {
	return &ContentService{cfg: cfg, content: content, profiles: profiles, audit: audit}
}

func (s *ContentService) List(contentType string) ([]models.Content, error) {
	return s.content.List(contentType)
}

// Get returns one item for viewerID, which is empty for anonymous visitors. Non-public content
// requires a signed-in member with access; a blocked member sees public items as a visitor.
func (s *ContentService) Get(id, viewerID string) (*ContentView, error) {
	c, err := s.content.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var viewer *models.Profile
	if viewerID != "" {
		viewer, err = s.profiles.GetByID(viewerID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			viewer = nil
		case err != nil:
			return nil, err
		}
	}
	if viewer == nil {
		if !c.IsPublic {
			return nil, ErrLoginRequired
		}
		return &ContentView{Content: c}, nil
	}
	if access := CheckMemberAccess(viewer.Status); !access.HasAccess {
		if !c.IsPublic {
			return nil, &AccessDeniedError{Result: access}
		}
		return &ContentView{Content: c}, nil
	}
	return &ContentView{Content: c, ShareURL: ShareURL(s.cfg.Server.AppURL, c.ID, viewer.ReferralCode)}, nil
}

func (s *ContentService) Create(ctx context.Context, actorID string, in ContentInput, meta RequestMeta) (*models.Content, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.FileURL = strings.TrimSpace(in.FileURL)
	if in.Title == "" || in.FileURL == "" || !validContentType(in.Type) {
		return nil, ErrInvalidContent
	}
	c := &models.Content{
		Title:     in.Title,
		Type:      in.Type,
		FileURL:   in.FileURL,
		IsPublic:  in.IsPublic,
		Duration:  in.Duration,
		CreatedBy: actorID,
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		c.Description = &d
	}
	if t := strings.TrimSpace(in.ThumbnailURL); t != "" {
		c.ThumbnailURL = &t
	}
	if err := s.content.Create(c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, meta, AuditEntry{
		ActorID:    actorID,
		Action:     domain.EventContentCreated,
		Resource:   "content",
		ResourceID: c.ID,
		Metadata:   map[string]interface{}{"title": c.Title, "type": c.Type},
	})
	return c, nil
}

// ToggleVisibility flips is_public and returns the updated row.
func (s *ContentService) ToggleVisibility(id string) (*models.Content, error) {
	c, err := s.content.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.content.SetPublic(id, !c.IsPublic); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.IsPublic = !c.IsPublic
	return c, nil
}

func (s *ContentService) Delete(ctx context.Context, actorID, id string, meta RequestMeta) error {
	if err := s.content.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit.Record(ctx, meta, AuditEntry{
		ActorID:    actorID,
		Action:     domain.EventContentDeleted,
		Resource:   "content",
		ResourceID: id,
	})
	return nil
}

func validContentType(t string) bool {
	switch t {
	case domain.ContentTypeVideo, domain.ContentTypeAudio, domain.ContentTypePDF:
		return true
	}
	return false
}
