package models

import (
	"time"

	"z2b/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is a member identity together with its portal profile.
type Profile struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	Email               string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash        string     `gorm:"size:255;not null" json:"-"`
	FullName            string     `gorm:"size:255" json:"full_name"`
	WhatsappNumber      string     `gorm:"size:32" json:"whatsapp_number"`
	ReferralCode        string     `gorm:"uniqueIndex;size:16;not null" json:"referral_code"`
	ReferredBy          *string    `gorm:"size:16;index" json:"referred_by"` // referral code of the inviter
	Status              string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	MembershipType      string     `gorm:"size:20;not null;default:'free';index" json:"membership_type"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
	TotalReferrals      int        `gorm:"not null;default:0" json:"total_referrals"`
	IsAdmin             bool       `gorm:"not null;default:false" json:"is_admin"`
	LastLogin           *time.Time `json:"last_login"`
	CreatedAt           time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.StatusActive
	}
	if p.MembershipType == "" {
		p.MembershipType = domain.MembershipFree
	}
	return nil
}

// DisplayName is the full name, falling back to the email.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
