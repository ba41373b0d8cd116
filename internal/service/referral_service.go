package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"z2b/config"
	"z2b/internal/auth"
	"z2b/internal/domain"
	"z2b/internal/models"
	"z2b/internal/repository"

	"gorm.io/gorm"
)

const (
	referralCodeLength   = 8
	referralCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateReferralCode returns 8 random upper-case base-36 characters.
func GenerateReferralCode() (string, error) {
	max := big.NewInt(int64(len(referralCodeAlphabet)))
	b := make([]byte, referralCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = referralCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// NormalizeReferralCode trims and upper-cases a code taken from a URL or form.
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ReferralURL is the signup link a member shares.
func ReferralURL(appURL, code string) string {
	return fmt.Sprintf("%s/signup?ref=%s", appURL, url.QueryEscape(code))
}

// ShareURL is a content link that carries the sharer's referral code.
func ShareURL(appURL, contentID, code string) string {
	return fmt.Sprintf("%s/content/%s?ref=%s", appURL, url.PathEscape(contentID), url.QueryEscape(code))
}

// ClickResult is returned by TrackClick. Token is empty when the code is unknown.
type ClickResult struct {
	Tracked    bool   `json:"tracked"`
	ClickToken string `json:"click_token,omitempty"`
}

// Dashboard is the member's referral overview.
type Dashboard struct {
	Profile     *models.Profile `json:"profile"`
	ReferralURL string          `json:"referral_url"`
	Clicks      int64           `json:"clicks"`
	Conversions int64           `json:"conversions"`
}

type ReferralService struct {
	cfg       *config.Config
	profiles  *repository.ProfileRepository
	referrals *repository.ReferralRepository
	audit     *AuditService
}

func NewReferralService(
	cfg *config.Config,
	profiles *repository.ProfileRepository,
	referrals *repository.ReferralRepository,
	audit *AuditService,
) *ReferralService {
	return &ReferralService{
		cfg:       cfg,
		profiles:  profiles,
		referrals: referrals,
		audit:     audit,
	}
}

// TrackClick records one load of a referral link. Unknown codes are not an error: nothing is
// written and Tracked is false.
func (s *ReferralService) TrackClick(ctx context.Context, code, contentID string, meta RequestMeta) (*ClickResult, error) {
	code = NormalizeReferralCode(code)
	if code == "" {
		return &ClickResult{}, nil
	}
	referrer, err := s.profiles.GetByReferralCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ClickResult{}, nil
		}
		return nil, err
	}

	click := &models.ReferralClick{
		ReferrerID: referrer.ID,
		IPAddress:  meta.IP,
		UserAgent:  truncate(meta.UserAgent, 512),
	}
	if contentID = strings.TrimSpace(contentID); contentID != "" {
		click.ContentID = &contentID
	}
	if err := s.referrals.CreateClick(click); err != nil {
		return nil, fmt.Errorf("record referral click: %w", err)
	}
	token, err := auth.GenerateClickToken(&s.cfg.JWT, click.ID, code)
	if err != nil {
		return nil, err
	}
	s.audit.Emit(ctx, AuditEntry{
		Action:     domain.EventReferralClicked,
		Resource:   "referral_click",
		ResourceID: referrer.ID,
		Metadata:   map[string]interface{}{"click_id": click.ID, "content_id": contentID},
	})
	return &ClickResult{Tracked: true, ClickToken: token}, nil
}

func (s *ReferralService) Dashboard(userID string) (*Dashboard, error) {
	p, err := s.profiles.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	clicks, conversions, err := s.referrals.CountClicks(p.ID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Profile:     p,
		ReferralURL: ReferralURL(s.cfg.Server.AppURL, p.ReferralCode),
		Clicks:      clicks,
		Conversions: conversions,
	}, nil
}

// Tree returns a member and the members who signed up with its code.
func (s *ReferralService) Tree(code string) (*models.Profile, []models.Profile, error) {
	p, err := s.profiles.GetByReferralCode(NormalizeReferralCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	children, err := s.profiles.ListByReferredBy(p.ReferralCode)
	if err != nil {
		return nil, nil, err
	}
	return p, children, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
