package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post is a workshop feed entry. Workshop posts carry questions and exercises.
type Post struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;not null;index" json:"user_id"`
	ContentType  string    `gorm:"size:10;not null" json:"content_type"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Content      string    `gorm:"type:text" json:"content"`
	MediaURL     *string   `gorm:"size:1024" json:"media_url"`
	ThumbnailURL *string   `gorm:"size:1024" json:"thumbnail_url"`
	IsPublic     bool      `gorm:"not null;index" json:"is_public"`
	IsWorkshop   bool      `gorm:"not null;default:false" json:"is_workshop"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Author    Profile            `gorm:"foreignKey:UserID" json:"-"`
	Questions []WorkshopQuestion `gorm:"foreignKey:PostID" json:"questions,omitempty"`
	Exercises []DailyExercise    `gorm:"foreignKey:PostID" json:"exercises,omitempty"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type WorkshopQuestion struct {
	ID            string                      `gorm:"primaryKey;size:36" json:"id"`
	PostID        string                      `gorm:"size:36;not null;index" json:"post_id"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer string                      `gorm:"size:512" json:"correct_answer"`
	OrderIndex    int                         `gorm:"not null;default:0" json:"order_index"`
}

func (WorkshopQuestion) TableName() string { return "workshop_questions" }

func (q *WorkshopQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

type DailyExercise struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	PostID        string     `gorm:"size:36;not null;index" json:"post_id"`
	ExerciseTitle string     `gorm:"size:255;not null" json:"exercise_title"`
	Instructions  string     `gorm:"type:text" json:"instructions"`
	Deadline      *time.Time `json:"deadline"`
}

func (DailyExercise) TableName() string { return "daily_exercises" }

func (e *DailyExercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// PostReaction is unique per (post, user): a member holds at most one reaction on a post.
type PostReaction struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	PostID       string    `gorm:"size:36;not null;uniqueIndex:idx_reaction_post_user" json:"post_id"`
	UserID       string    `gorm:"size:36;not null;uniqueIndex:idx_reaction_post_user" json:"user_id"`
	ReactionType string    `gorm:"size:20;not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PostReaction) TableName() string { return "post_reactions" }

func (r *PostReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type PostComment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    string    `gorm:"size:36;not null;index" json:"post_id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Author Profile `gorm:"foreignKey:UserID" json:"-"`
}

func (PostComment) TableName() string { return "post_comments" }

func (c *PostComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
