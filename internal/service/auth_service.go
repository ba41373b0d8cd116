package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"z2b/config"
	"z2b/internal/auth"
	"z2b/internal/domain"
	"z2b/internal/models"
	"z2b/internal/repository"
	"z2b/pkg/mail"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidCreds          = errors.New("invalid email or password")
	ErrWeakPassword          = errors.New("password must be at least 6 characters")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrReferralCodeExhausted = errors.New("referral code generation exhausted")
	ErrNotFound              = errors.New("not found")
)

const (
	MinPasswordLength = 6
	// MaxReferralCodeAttempts bounds signup retries on referral code collisions.
	MaxReferralCodeAttempts = 5
)

type SignupInput struct {
	Email          string
	Password       string
	FullName       string
	WhatsappNumber string
	ReferralCode   string
	ClickToken     string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthService struct {
	cfg       *config.Config
	db        *gorm.DB
	profiles  *repository.ProfileRepository
	referrals *repository.ReferralRepository
	audit     *AuditService
	mailer    mail.Sender
	log       *zap.Logger

	newCode func() (string, error)
	now     func() time.Time
}

func NewAuthService(
	cfg *config.Config,
	db *gorm.DB,
	profiles *repository.ProfileRepository,
	referrals *repository.ReferralRepository,
	audit *AuditService,
	mailer mail.Sender,
	log *zap.Logger,
) *AuthService {
	if mailer == nil {
		mailer = mail.Nop{}
	}
	return &AuthService{
		cfg:       cfg,
		db:        db,
		profiles:  profiles,
		referrals: referrals,
		audit:     audit,
		mailer:    mailer,
		log:       log,
		newCode:   GenerateReferralCode,
		now:       time.Now,
	}
}

// Signup creates a profile with a fresh referral code and attributes it to the inviter named by
// in.ReferralCode. Each attempt runs in its own transaction; a referral code collision rolls the
// attempt back and retries with a new code.
func (s *AuthService) Signup(ctx context.Context, in SignupInput, meta RequestMeta) (*models.Profile, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if len(in.Password) < MinPasswordLength {
		return nil, nil, ErrWeakPassword
	}
	_, err := s.profiles.GetByEmail(email)
	if err == nil {
		return nil, nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	var click *auth.ClickClaims
	if in.ClickToken != "" {
		if c, err := auth.ParseClickToken(&s.cfg.JWT, in.ClickToken); err == nil {
			click = c
		} else {
			s.log.Debug("ignoring invalid click token", zap.Error(err))
		}
	}
	refCode := NormalizeReferralCode(in.ReferralCode)

	var (
		p         *models.Profile
		referrer  *models.Profile
		converted bool
	)
	for attempt := 1; ; attempt++ {
		if attempt > MaxReferralCodeAttempts {
			return nil, nil, ErrReferralCodeExhausted
		}
		code, err := s.newCode()
		if err != nil {
			return nil, nil, err
		}
		p = &models.Profile{
			Email:          email,
			PasswordHash:   string(hash),
			FullName:       strings.TrimSpace(in.FullName),
			WhatsappNumber: strings.TrimSpace(in.WhatsappNumber),
			ReferralCode:   code,
			Status:         domain.StatusActive,
			MembershipType: domain.MembershipFree,
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			referrer, converted, txErr = s.createProfile(tx, p, refCode, click)
			return txErr
		})
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, fmt.Errorf("create profile: %w", err)
		}
		// The email may have been taken concurrently; only a code clash is retried.
		if _, lookupErr := s.profiles.GetByEmail(email); lookupErr == nil {
			return nil, nil, ErrEmailExists
		}
		s.log.Info("referral code collision, retrying", zap.Int("attempt", attempt))
	}

	s.afterSignup(ctx, p, referrer, converted, click, meta)

	tokens, err := s.issueTokens(p)
	if err != nil {
		return p, nil, err
	}
	return p, tokens, nil
}

// createProfile inserts p and records the referral inside tx. Unknown codes are ignored.
func (s *AuthService) createProfile(tx *gorm.DB, p *models.Profile, refCode string, click *auth.ClickClaims) (*models.Profile, bool, error) {
	profiles := s.profiles.WithTx(tx)

	var referrer *models.Profile
	if refCode != "" {
		r, err := profiles.GetByReferralCode(refCode)
		switch {
		case err == nil:
			referrer = r
			code := r.ReferralCode
			p.ReferredBy = &code
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, false, err
		}
	}
	if err := profiles.Create(p); err != nil {
		return nil, false, err
	}
	if referrer == nil {
		return nil, false, nil
	}
	if err := profiles.IncrementReferrals(referrer.ID); err != nil {
		return nil, false, err
	}
	if click == nil {
		return referrer, false, nil
	}
	converted, err := s.referrals.WithTx(tx).ClaimClick(click.ClickID, referrer.ID, p.ID, s.now().UTC())
	if err != nil {
		return nil, false, err
	}
	return referrer, converted, nil
}

func (s *AuthService) afterSignup(ctx context.Context, p, referrer *models.Profile, converted bool, click *auth.ClickClaims, meta RequestMeta) {
	md := map[string]interface{}{"email": p.Email, "referral_code": p.ReferralCode}
	if referrer != nil {
		md["referred_by"] = referrer.ReferralCode
	}
	s.audit.Record(ctx, meta, AuditEntry{
		ActorID:    p.ID,
		Action:     domain.EventMemberSignedUp,
		Resource:   "profile",
		ResourceID: p.ID,
		Metadata:   md,
	})
	if converted {
		s.audit.Record(ctx, meta, AuditEntry{
			ActorID:    p.ID,
			Action:     domain.EventReferralConverted,
			Resource:   "referral_click",
			ResourceID: click.ClickID,
			Metadata:   map[string]interface{}{"referrer_id": referrer.ID, "profile_id": p.ID},
		})
	}

	to, name, link := p.Email, p.FullName, ReferralURL(s.cfg.Server.AppURL, p.ReferralCode)
	go func() {
		if err := s.mailer.Send(to, "Welcome to the Z2B Table Banquet", mail.WelcomeHTML(name, link)); err != nil {
			s.log.Warn("welcome mail failed", zap.String("email", to), zap.Error(err))
		}
	}()
}

// Login verifies credentials and the member's status. Suspended and deleted members get an
// *AccessDeniedError carrying the message to show.
func (s *AuthService) Login(ctx context.Context, email, password string, meta RequestMeta) (*models.Profile, *TokenPair, error) {
	p, err := s.profiles.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCreds
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCreds
	}
	if access := CheckMemberAccess(p.Status); !access.HasAccess {
		return p, nil, &AccessDeniedError{Result: access}
	}
	now := s.now().UTC()
	if err := s.profiles.TouchLastLogin(p.ID, now); err != nil {
		s.log.Warn("last login update failed", zap.String("user_id", p.ID), zap.Error(err))
	} else {
		p.LastLogin = &now
	}
	s.audit.Record(ctx, meta, AuditEntry{
		ActorID:    p.ID,
		Action:     domain.EventMemberLoggedIn,
		Resource:   "profile",
		ResourceID: p.ID,
	})
	tokens, err := s.issueTokens(p)
	if err != nil {
		return p, nil, err
	}
	return p, tokens, nil
}

func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	p, err := s.profiles.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if access := CheckMemberAccess(p.Status); !access.HasAccess {
		return nil, &AccessDeniedError{Result: access}
	}
	return s.issueTokens(p)
}

// Logout only records the event; tokens are stateless and expire on their own.
func (s *AuthService) Logout(ctx context.Context, userID string, meta RequestMeta) {
	s.audit.Record(ctx, meta, AuditEntry{
		ActorID:    userID,
		Action:     domain.EventMemberLoggedOut,
		Resource:   "profile",
		ResourceID: userID,
	})
}

func (s *AuthService) CurrentUser(userID string) (*models.Profile, error) {
	p, err := s.profiles.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

type ProfileUpdate struct {
	FullName       *string
	WhatsappNumber *string
}

func (s *AuthService) UpdateProfile(userID string, in ProfileUpdate) (*models.Profile, error) {
	fields := map[string]interface{}{}
	if in.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.WhatsappNumber != nil {
		fields["whatsapp_number"] = strings.TrimSpace(*in.WhatsappNumber)
	}
	if len(fields) > 0 {
		if err := s.profiles.Updates(userID, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}
	return s.CurrentUser(userID)
}

func (s *AuthService) issueTokens(p *models.Profile) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, p.ID, p.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, p.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.JWT.AccessExpiry.Seconds()),
	}, nil
}
