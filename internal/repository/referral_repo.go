package repository

import (
	"time"

	"z2b/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) WithTx(tx *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: tx}
}

// CreateClick records one load of a referral link.
func (r *ReferralRepository) CreateClick(click *models.ReferralClick) error {
	return r.db.Create(click).Error
}

func (r *ReferralRepository) GetClick(id string) (*models.ReferralClick, error) {
	var c models.ReferralClick
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClaimClick marks the click converted for profileID only if it belongs to referrerID and
// has not been converted yet. It reports whether this call performed the conversion.
func (r *ReferralRepository) ClaimClick(clickID, referrerID, profileID string, at time.Time) (bool, error) {
	res := r.db.Model(&models.ReferralClick{}).
		Where("id = ? AND referrer_id = ? AND converted = ?", clickID, referrerID, false).
		Updates(map[string]interface{}{
			"converted":            true,
			"converted_profile_id": profileID,
			"converted_at":         at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CountClicks returns total and converted click counts for a referrer.
func (r *ReferralRepository) CountClicks(referrerID string) (clicks, conversions int64, err error) {
	if err = r.db.Model(&models.ReferralClick{}).Where("referrer_id = ?", referrerID).Count(&clicks).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&models.ReferralClick{}).
		Where("referrer_id = ? AND converted = ?", referrerID, true).
		Count(&conversions).Error
	return clicks, conversions, err
}
