package service

import (
	"context"
	"encoding/json"
	"time"

	"z2b/internal/models"
	"z2b/internal/repository"
	"z2b/pkg/events"

	"go.uber.org/zap"
)

// RequestMeta identifies the caller of an operation for the audit trail.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type AuditEntry struct {
	ActorID    string
	Action     string
	Resource   string
	ResourceID string
	Metadata   map[string]interface{}
}

// AuditService writes audit rows and mirrors them onto the event stream. Neither side
// fails the calling operation; errors are logged.
type AuditService struct {
	repo      *repository.AuditLogRepository
	publisher events.Publisher
	log       *zap.Logger
}

func NewAuditService(repo *repository.AuditLogRepository, publisher events.Publisher, log *zap.Logger) *AuditService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &AuditService{repo: repo, publisher: publisher, log: log}
}

func (s *AuditService) Record(ctx context.Context, meta RequestMeta, e AuditEntry) {
	row := &models.AuditLog{
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
	}
	if e.ActorID != "" {
		actor := e.ActorID
		row.UserID = &actor
	}
	if len(e.Metadata) > 0 {
		if b, err := json.Marshal(e.Metadata); err == nil {
			row.Metadata = string(b)
		}
	}
	if err := s.repo.Create(row); err != nil {
		s.log.Warn("audit write failed", zap.String("action", e.Action), zap.Error(err))
	}

	s.Emit(ctx, e)
}

// Emit publishes the entry as an event without writing an audit row. Used for
// high-volume actions such as referral clicks.
func (s *AuditService) Emit(ctx context.Context, e AuditEntry) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:       e.Action,
		Key:        e.ResourceID,
		ActorID:    e.ActorID,
		Payload:    e.Metadata,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("event publish failed", zap.String("type", e.Action), zap.Error(err))
	}
}

func (s *AuditService) History(resource, resourceID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByResource(resource, resourceID, limit)
}
