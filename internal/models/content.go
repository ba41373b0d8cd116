package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Content is a media asset in the member library.
type Content struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	Type         string    `gorm:"size:10;not null;index" json:"type"` // video | audio | pdf
	FileURL      string    `gorm:"size:1024;not null" json:"file_url"`
	ThumbnailURL *string   `gorm:"size:1024" json:"thumbnail_url"`
	IsPublic     bool      `gorm:"not null" json:"is_public"`
	Duration     *int      `json:"duration"` // seconds
	CreatedBy    string    `gorm:"size:36;not null;index" json:"created_by"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Content) TableName() string { return "content" }

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
