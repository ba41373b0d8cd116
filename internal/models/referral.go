package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralClick is one load of a referral link. It references the referrer only;
// ConvertedProfileID is set when a signup claims the click through its click token.
type ReferralClick struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	ReferrerID         string     `gorm:"size:36;not null;index" json:"referrer_id"`
	IPAddress          string     `gorm:"size:45" json:"ip_address"`
	UserAgent          string     `gorm:"size:512" json:"user_agent"`
	ContentID          *string    `gorm:"size:36" json:"content_id"`
	Converted          bool       `gorm:"not null;default:false;index" json:"converted"`
	ConvertedProfileID *string    `gorm:"size:36" json:"converted_profile_id"`
	ConvertedAt        *time.Time `json:"converted_at"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`

	Referrer Profile `gorm:"foreignKey:ReferrerID" json:"-"`
}

func (ReferralClick) TableName() string { return "referral_clicks" }

func (c *ReferralClick) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
