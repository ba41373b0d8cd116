package service

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"time"

	"z2b/internal/domain"
	"z2b/internal/models"
	"z2b/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidAction = errors.New("invalid member action")

// ReferralStats summarizes referral activity across all members.
type ReferralStats struct {
	TotalReferrals   int64   `json:"total_referrals"`
	TopReferrer      string  `json:"top_referrer"`
	AveragePerMember float64 `json:"average_per_member"`
	ConversionRate   float64 `json:"conversion_rate"`
}

// Disconnecter drops a member's live connections.
type Disconnecter interface {
	Disconnect(userID string)
}

type nopDisconnecter struct{}

func (nopDisconnecter) Disconnect(string) {}

type AdminService struct {
	profiles *repository.ProfileRepository
	admin    *repository.AdminRepository
	audit    *AuditService
	sessions Disconnecter
	log      *zap.Logger

	now func() time.Time
}

func NewAdminService(
	profiles *repository.ProfileRepository,
	admin *repository.AdminRepository,
	audit *AuditService,
	sessions Disconnecter,
	log *zap.Logger,
) *AdminService {
	if sessions == nil {
		sessions = nopDisconnecter{}
	}
	return &AdminService{
		profiles: profiles,
		admin:    admin,
		audit:    audit,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

func (s *AdminService) ListMembers(f repository.MemberFilter) ([]models.Profile, *repository.MemberStats, error) {
	list, err := s.admin.ListMembers(f)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.admin.MemberStats()
	if err != nil {
		return nil, nil, err
	}
	return list, stats, nil
}

// ExportMembers writes the filtered member list as CSV.
func (s *AdminService) ExportMembers(w io.Writer, f repository.MemberFilter) error {
	list, err := s.admin.ListMembers(f)
	if err != nil {
		return err
	}
	return WriteMembersCSV(w, list)
}

// ApplyMemberAction changes a member's status or upgrades the membership. An upgrade sets the
// subscription end to exactly SubscriptionDays after the time of execution.
func (s *AdminService) ApplyMemberAction(ctx context.Context, actorID, memberID, action string, meta RequestMeta) (*models.Profile, error) {
	now := s.now().UTC()
	fields := map[string]interface{}{}
	event := domain.EventMemberStatusChanged
	switch action {
	case domain.ActionActivate:
		fields["status"] = domain.StatusActive
	case domain.ActionSuspend:
		fields["status"] = domain.StatusSuspended
	case domain.ActionDelete:
		fields["status"] = domain.StatusDeleted
	case domain.ActionUpgrade:
		fields["membership_type"] = domain.MembershipPaid
		fields["subscription_end_date"] = now.AddDate(0, 0, domain.SubscriptionDays)
		event = domain.EventMemberUpgraded
	default:
		return nil, ErrInvalidAction
	}

	before, err := s.profiles.GetByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.profiles.Updates(memberID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	after, err := s.profiles.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if !CheckMemberAccess(after.Status).HasAccess {
		s.sessions.Disconnect(memberID)
	}

	s.log.Info("member action applied",
		zap.String("actor_id", actorID),
		zap.String("member_id", memberID),
		zap.String("action", action))
	s.audit.Record(ctx, meta, AuditEntry{
		ActorID:    actorID,
		Action:     event,
		Resource:   "profile",
		ResourceID: memberID,
		Metadata: map[string]interface{}{
			"action":          action,
			"previous_status": before.Status,
			"status":          after.Status,
			"membership_type": after.MembershipType,
		},
	})
	return after, nil
}

func (s *AdminService) MemberHistory(memberID string) ([]models.AuditLog, error) {
	return s.audit.History("profile", memberID, 50)
}

// ReferralReport returns the leaderboard narrowed by search and stats over the whole board.
func (s *AdminService) ReferralReport(search string) ([]repository.LeaderboardEntry, *ReferralStats, error) {
	board, err := s.admin.ReferralLeaderboard()
	if err != nil {
		return nil, nil, err
	}
	totals, err := s.admin.ReferralTotals()
	if err != nil {
		return nil, nil, err
	}
	stats := buildReferralStats(board, totals)
	return filterLeaderboard(board, search), stats, nil
}

// ExportReferrals writes the leaderboard, narrowed by search, as CSV.
func (s *AdminService) ExportReferrals(w io.Writer, search string) error {
	board, err := s.admin.ReferralLeaderboard()
	if err != nil {
		return err
	}
	return WriteReferralsCSV(w, filterLeaderboard(board, search))
}

// filterLeaderboard keeps entries whose email, name or referral code contains search,
// ignoring case.
func filterLeaderboard(board []repository.LeaderboardEntry, search string) []repository.LeaderboardEntry {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return board
	}
	out := make([]repository.LeaderboardEntry, 0, len(board))
	for _, e := range board {
		if strings.Contains(strings.ToLower(e.Email), q) ||
			strings.Contains(strings.ToLower(e.FullName), q) ||
			strings.Contains(strings.ToLower(e.ReferralCode), q) {
			out = append(out, e)
		}
	}
	return out
}

func buildReferralStats(board []repository.LeaderboardEntry, t *repository.ReferralTotals) *ReferralStats {
	stats := &ReferralStats{TotalReferrals: t.TotalReferrals, TopReferrer: "N/A"}
	if len(board) > 0 {
		switch {
		case board[0].FullName != "":
			stats.TopReferrer = board[0].FullName
		case board[0].Email != "":
			stats.TopReferrer = board[0].Email
		}
	}
	if t.Members > 0 {
		stats.AveragePerMember = round1(float64(t.TotalReferrals) / float64(t.Members))
		stats.ConversionRate = round1(float64(t.ReferredCount) / float64(t.Members) * 100)
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
