package repository

import (
	"time"

	"z2b/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

func (r *ProfileRepository) Create(p *models.Profile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) GetByID(id string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Where("email = ?", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByReferralCode(code string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Where("referral_code = ?", code).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByReferredBy returns the profiles that signed up with the given code, newest first.
func (r *ProfileRepository) ListByReferredBy(code string) ([]models.Profile, error) {
	var list []models.Profile
	err := r.db.Where("referred_by = ?", code).Order("created_at DESC").Find(&list).Error
	return list, err
}

// Updates applies a partial update to one profile row. Returns gorm.ErrRecordNotFound
// when no row matched.
func (r *ProfileRepository) Updates(id string, fields map[string]interface{}) error {
	res := r.db.Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementReferrals bumps the denormalized referral counter in place.
func (r *ProfileRepository) IncrementReferrals(id string) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", id).
		UpdateColumn("total_referrals", gorm.Expr("total_referrals + 1")).Error
}

func (r *ProfileRepository) TouchLastLogin(id string, at time.Time) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).UpdateColumn("last_login", at).Error
}
