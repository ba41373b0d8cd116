package service

import (
	"testing"
	"time"

	"z2b/config"
	"z2b/internal/models"
	"z2b/internal/repository"
	"z2b/internal/testutil"
	"z2b/pkg/events"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AppURL: "https://z2b.test"},
		JWT: config.JWTConfig{
			AccessSecret:     "access-secret",
			RefreshSecret:    "refresh-secret",
			ClickSecret:      "click-secret",
			AccessExpiry:     time.Hour,
			RefreshExpiry:    7 * 24 * time.Hour,
			ClickTokenExpiry: 30 * 24 * time.Hour,
			Issuer:           "z2b",
		},
	}
}

type testEnv struct {
	cfg       *config.Config
	db        *gorm.DB
	profiles  *repository.ProfileRepository
	referrals *repository.ReferralRepository
	audit     *AuditService
	auth      *AuthService
	referral  *ReferralService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDB(testutil.NewDB(t))
}

func newTestEnvWithDB(db *gorm.DB) *testEnv {
	cfg := testConfig()
	log := zap.NewNop()
	profiles := repository.NewProfileRepository(db)
	referrals := repository.NewReferralRepository(db)
	audit := NewAuditService(repository.NewAuditLogRepository(db), events.Nop{}, log)
	return &testEnv{
		cfg:       cfg,
		db:        db,
		profiles:  profiles,
		referrals: referrals,
		audit:     audit,
		auth:      NewAuthService(cfg, db, profiles, referrals, audit, nil, log),
		referral:  NewReferralService(cfg, profiles, referrals, audit),
	}
}

// seedProfile inserts a profile directly, bypassing signup.
func seedProfile(t *testing.T, db *gorm.DB, email, code string) *models.Profile {
	t.Helper()
	p := &models.Profile{Email: email, PasswordHash: "x", ReferralCode: code}
	require.NoError(t, db.Create(p).Error)
	return p
}

// codeSequence returns a generator that yields codes in order, repeating the last one.
func codeSequence(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c, nil
	}
}
