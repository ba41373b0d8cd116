package repository

import (
	"strings"

	"z2b/internal/domain"
	"z2b/internal/models"

	"gorm.io/gorm"
)

// MemberFilter narrows the admin member list. Empty fields match everything.
type MemberFilter struct {
	Search     string
	Status     string
	Membership string
}

type MemberStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Suspended int64 `json:"suspended"`
	Paid      int64 `json:"paid"`
	Free      int64 `json:"free"`
}

type LeaderboardEntry struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ReferralCode    string `json:"referral_code"`
	TotalReferrals  int    `json:"total_referrals"`
	ActiveReferrals int64  `json:"active_referrals"`
	PaidReferrals   int64  `json:"paid_referrals"`
}

// ReferralTotals are the raw aggregates behind the admin referral stats.
type ReferralTotals struct {
	TotalReferrals int64
	Members        int64
	ReferredCount  int64
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// ListMembers returns profiles newest first. Search is case-insensitive over email,
// full name and referral code.
func (r *AdminRepository) ListMembers(f MemberFilter) ([]models.Profile, error) {
	q := r.db.Model(&models.Profile{})
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(referral_code) LIKE ?", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Membership != "" {
		q = q.Where("membership_type = ?", f.Membership)
	}
	var list []models.Profile
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// MemberStats counts over all profiles, independent of any list filter.
func (r *AdminRepository) MemberStats() (*MemberStats, error) {
	var s MemberStats
	counts := []struct {
		dst   *int64
		where string
		arg   string
	}{
		{&s.Active, "status = ?", domain.StatusActive},
		{&s.Suspended, "status = ?", domain.StatusSuspended},
		{&s.Paid, "membership_type = ?", domain.MembershipPaid},
		{&s.Free, "membership_type = ?", domain.MembershipFree},
	}
	if err := r.db.Model(&models.Profile{}).Count(&s.Total).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := r.db.Model(&models.Profile{}).Where(c.where, c.arg).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// ReferralLeaderboard lists members with at least one referral, highest first, with how many
// of their referrals are active and how many are paid.
func (r *AdminRepository) ReferralLeaderboard() ([]LeaderboardEntry, error) {
	var top []models.Profile
	err := r.db.Where("total_referrals > ?", 0).
		Order("total_referrals DESC").Order("created_at ASC").
		Find(&top).Error
	if err != nil || len(top) == 0 {
		return []LeaderboardEntry{}, err
	}
	codes := make([]string, 0, len(top))
	for _, p := range top {
		codes = append(codes, p.ReferralCode)
	}
	var rows []struct {
		ReferredBy string
		Active     int64
		Paid       int64
	}
	err = r.db.Model(&models.Profile{}).
		Select("referred_by, "+
			"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS active, "+
			"SUM(CASE WHEN membership_type = ? THEN 1 ELSE 0 END) AS paid",
			domain.StatusActive, domain.MembershipPaid).
		Where("referred_by IN ?", codes).
		Group("referred_by").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]int, len(rows))
	for i, row := range rows {
		byCode[row.ReferredBy] = i
	}
	out := make([]LeaderboardEntry, 0, len(top))
	for _, p := range top {
		e := LeaderboardEntry{
			ID:             p.ID,
			FullName:       p.FullName,
			Email:          p.Email,
			ReferralCode:   p.ReferralCode,
			TotalReferrals: p.TotalReferrals,
		}
		if i, ok := byCode[p.ReferralCode]; ok {
			e.ActiveReferrals = rows[i].Active
			e.PaidReferrals = rows[i].Paid
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *AdminRepository) ReferralTotals() (*ReferralTotals, error) {
	var t ReferralTotals
	var sum struct{ Total int64 }
	if err := r.db.Model(&models.Profile{}).Select("COALESCE(SUM(total_referrals), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, err
	}
	t.TotalReferrals = sum.Total
	if err := r.db.Model(&models.Profile{}).Count(&t.Members).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Profile{}).Where("referred_by IS NOT NULL AND referred_by <> ''").Count(&t.ReferredCount).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
