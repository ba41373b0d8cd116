package repository

import (
	"testing"
	"time"

	"z2b/internal/domain"
	"z2b/internal/models"
	"z2b/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createProfile(t *testing.T, db *gorm.DB, p models.Profile) *models.Profile {
	t.Helper()
	if p.PasswordHash == "" {
		p.PasswordHash = "x"
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func strPtr(s string) *string { return &s }

func TestProfileRepository_Lookups(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)
	p := createProfile(t, db, models.Profile{Email: "a@example.com", ReferralCode: "AAAA1111"})

	got, err := repo.GetByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Equal(t, domain.MembershipFree, got.MembershipType)

	_, err = repo.GetByReferralCode("AAAA1111")
	assert.NoError(t, err)
	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Create(&models.Profile{Email: "a@example.com", PasswordHash: "x", ReferralCode: "BBBB2222"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	err = repo.Create(&models.Profile{Email: "b@example.com", PasswordHash: "x", ReferralCode: "AAAA1111"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProfileRepository_UpdatesAndCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)
	p := createProfile(t, db, models.Profile{Email: "a@example.com", ReferralCode: "AAAA1111"})

	require.NoError(t, repo.Updates(p.ID, map[string]interface{}{"status": domain.StatusSuspended}))
	assert.ErrorIs(t, repo.Updates("missing", map[string]interface{}{"status": domain.StatusActive}), gorm.ErrRecordNotFound)

	require.NoError(t, repo.IncrementReferrals(p.ID))
	require.NoError(t, repo.IncrementReferrals(p.ID))
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.TouchLastLogin(p.ID, now))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, got.Status)
	assert.Equal(t, 2, got.TotalReferrals)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, now, *got.LastLogin, time.Second)
}

func TestProfileRepository_ListByReferredBy(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)
	createProfile(t, db, models.Profile{Email: "root@example.com", ReferralCode: "ROOT0000"})
	createProfile(t, db, models.Profile{Email: "c1@example.com", ReferralCode: "CHLD0001", ReferredBy: strPtr("ROOT0000")})
	createProfile(t, db, models.Profile{Email: "c2@example.com", ReferralCode: "CHLD0002", ReferredBy: strPtr("ROOT0000")})
	createProfile(t, db, models.Profile{Email: "other@example.com", ReferralCode: "OTHR0000"})

	list, err := repo.ListByReferredBy("ROOT0000")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestReferralRepository_ClaimClickAtMostOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReferralRepository(db)
	referrer := createProfile(t, db, models.Profile{Email: "r@example.com", ReferralCode: "REF00000"})
	other := createProfile(t, db, models.Profile{Email: "o@example.com", ReferralCode: "OTH00000"})

	click := &models.ReferralClick{ReferrerID: referrer.ID, IPAddress: "10.0.0.1"}
	require.NoError(t, repo.CreateClick(click))
	require.NotEmpty(t, click.ID)

	claimed, err := repo.ClaimClick(click.ID, other.ID, "p1", time.Now())
	require.NoError(t, err)
	assert.False(t, claimed, "a click cannot be claimed for a different referrer")

	claimed, err = repo.ClaimClick(click.ID, referrer.ID, "p1", time.Now())
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.ClaimClick(click.ID, referrer.ID, "p2", time.Now())
	require.NoError(t, err)
	assert.False(t, claimed)

	got, err := repo.GetClick(click.ID)
	require.NoError(t, err)
	assert.True(t, got.Converted)
	require.NotNil(t, got.ConvertedProfileID)
	assert.Equal(t, "p1", *got.ConvertedProfileID)

	require.NoError(t, repo.CreateClick(&models.ReferralClick{ReferrerID: referrer.ID}))
	clicks, conversions, err := repo.CountClicks(referrer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), clicks)
	assert.Equal(t, int64(1), conversions)
}

func TestAdminRepository_ListMembersFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAdminRepository(db)
	createProfile(t, db, models.Profile{Email: "alice@example.com", FullName: "Alice Smith", ReferralCode: "ALIC0001"})
	createProfile(t, db, models.Profile{Email: "bob@example.com", FullName: "Bob", ReferralCode: "BOBB0001",
		Status: domain.StatusSuspended})
	createProfile(t, db, models.Profile{Email: "carol@example.com", ReferralCode: "CARO0001",
		MembershipType: domain.MembershipPaid})

	tests := []struct {
		name   string
		filter MemberFilter
		want   int
	}{
		{"no filter", MemberFilter{}, 3},
		{"search by name is case-insensitive", MemberFilter{Search: "SMITH"}, 1},
		{"search by referral code", MemberFilter{Search: "bobb"}, 1},
		{"status", MemberFilter{Status: domain.StatusSuspended}, 1},
		{"membership", MemberFilter{Membership: domain.MembershipPaid}, 1},
		{"combined", MemberFilter{Search: "example.com", Status: domain.StatusActive}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.ListMembers(tt.filter)
			require.NoError(t, err)
			assert.Len(t, list, tt.want)
		})
	}

	stats, err := repo.MemberStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.Suspended)
	assert.Equal(t, int64(1), stats.Paid)
	assert.Equal(t, int64(2), stats.Free)
}

func TestAdminRepository_ReferralLeaderboard(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAdminRepository(db)

	empty, err := repo.ReferralLeaderboard()
	require.NoError(t, err)
	assert.Empty(t, empty)

	top := createProfile(t, db, models.Profile{Email: "top@example.com", ReferralCode: "TOP00000", TotalReferrals: 2})
	createProfile(t, db, models.Profile{Email: "low@example.com", ReferralCode: "LOW00000", TotalReferrals: 1})
	createProfile(t, db, models.Profile{Email: "none@example.com", ReferralCode: "NONE0000"})
	createProfile(t, db, models.Profile{Email: "r1@example.com", ReferralCode: "R1000000", ReferredBy: strPtr("TOP00000"),
		MembershipType: domain.MembershipPaid})
	createProfile(t, db, models.Profile{Email: "r2@example.com", ReferralCode: "R2000000", ReferredBy: strPtr("TOP00000"),
		Status: domain.StatusSuspended})
	createProfile(t, db, models.Profile{Email: "r3@example.com", ReferralCode: "R3000000", ReferredBy: strPtr("LOW00000")})

	board, err := repo.ReferralLeaderboard()
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, top.ID, board[0].ID)
	assert.Equal(t, 2, board[0].TotalReferrals)
	assert.Equal(t, int64(1), board[0].ActiveReferrals)
	assert.Equal(t, int64(1), board[0].PaidReferrals)
	assert.Equal(t, "LOW00000", board[1].ReferralCode)

	totals, err := repo.ReferralTotals()
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.TotalReferrals)
	assert.Equal(t, int64(6), totals.Members)
	assert.Equal(t, int64(3), totals.ReferredCount)
}

func TestContentRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContentRepository(db)
	video := &models.Content{Title: "Intro", Type: domain.ContentTypeVideo, FileURL: "v.mp4", IsPublic: true, CreatedBy: "admin"}
	pdf := &models.Content{Title: "Guide", Type: domain.ContentTypePDF, FileURL: "g.pdf", CreatedBy: "admin"}
	require.NoError(t, repo.Create(video))
	require.NoError(t, repo.Create(pdf))

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	videos, err := repo.List(domain.ContentTypeVideo)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, video.ID, videos[0].ID)

	got, err := repo.GetByID(pdf.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)

	require.NoError(t, repo.SetPublic(pdf.ID, true))
	assert.ErrorIs(t, repo.SetPublic("missing", true), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(video.ID))
	assert.ErrorIs(t, repo.Delete(video.ID), gorm.ErrRecordNotFound)
}

func TestPostRepository_ListPublicCounts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	author := createProfile(t, db, models.Profile{Email: "coach@example.com", FullName: "Coach", ReferralCode: "COACH000"})

	public := &models.Post{UserID: author.ID, ContentType: domain.PostTypeText, Title: "Day 1", IsPublic: true}
	hidden := &models.Post{UserID: author.ID, ContentType: domain.PostTypeText, Title: "Draft"}
	require.NoError(t, repo.Create(public))
	require.NoError(t, repo.Create(hidden))

	require.NoError(t, repo.CreateReaction(&models.PostReaction{PostID: public.ID, UserID: "u1", ReactionType: "like"}))
	require.NoError(t, repo.CreateReaction(&models.PostReaction{PostID: public.ID, UserID: "u2", ReactionType: "like"}))
	require.NoError(t, repo.CreateReaction(&models.PostReaction{PostID: public.ID, UserID: "u3", ReactionType: "love"}))
	err := repo.CreateReaction(&models.PostReaction{PostID: public.ID, UserID: "u1", ReactionType: "love"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	require.NoError(t, repo.CreateComment(&models.PostComment{PostID: public.ID, UserID: author.ID, Comment: "hi"}))

	feed, err := repo.ListPublic(20, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, public.ID, feed[0].ID)
	assert.Equal(t, "Coach", feed[0].AuthorName)
	assert.Equal(t, int64(2), feed[0].ReactionCounts["like"])
	assert.Equal(t, int64(1), feed[0].ReactionCounts["love"])
	assert.Equal(t, int64(1), feed[0].CommentCount)

	comments, err := repo.ListComments(public.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Coach", comments[0].AuthorName)
}

func TestAuditLogRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAuditLogRepository(db)
	for _, action := range []string{"member.suspended", "member.activated"} {
		require.NoError(t, repo.Create(&models.AuditLog{Action: action, Resource: "profile", ResourceID: "p1"}))
	}
	require.NoError(t, repo.Create(&models.AuditLog{Action: "member.suspended", Resource: "profile", ResourceID: "p2"}))

	list, err := repo.ListByResource("profile", "p1", 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	list, err = repo.ListByResource("profile", "p1", 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
