package repository

import (
	"z2b/internal/models"

	"gorm.io/gorm"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(c *models.Content) error {
	return r.db.Create(c).Error
}

func (r *ContentRepository) GetByID(id string) (*models.Content, error) {
	var c models.Content
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns content newest first, optionally filtered by type.
func (r *ContentRepository) List(contentType string) ([]models.Content, error) {
	q := r.db.Model(&models.Content{})
	if contentType != "" {
		q = q.Where("type = ?", contentType)
	}
	var list []models.Content
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// SetPublic flips visibility. Returns gorm.ErrRecordNotFound for unknown ids.
func (r *ContentRepository) SetPublic(id string, public bool) error {
	res := r.db.Model(&models.Content{}).Where("id = ?", id).Update("is_public", public)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContentRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Content{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
