package database

import (
	"errors"
	"fmt"

	"z2b/config"
	"z2b/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.ReferralClick{},
		&models.Content{},
		&models.Post{},
		&models.WorkshopQuestion{},
		&models.DailyExercise{},
		&models.PostReaction{},
		&models.PostComment{},
		&models.AuditLog{},
	)
}

// SeedAdmin creates the configured admin profile, or promotes an existing profile with
// that email. It is a no-op when no admin email is configured.
func SeedAdmin(db *gorm.DB, cfg *config.AdminSeedConfig, referralCode func() (string, error), log *zap.Logger) error {
	if cfg.Email == "" {
		return nil
	}
	var existing models.Profile
	err := db.Where("email = ?", cfg.Email).First(&existing).Error
	if err == nil {
		if existing.IsAdmin {
			return nil
		}
		log.Info("promoting existing profile to admin", zap.String("email", cfg.Email))
		return db.Model(&existing).Update("is_admin", true).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if cfg.Password == "" {
		return errors.New("ADMIN_PASSWORD is required to create the admin profile")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	code, err := referralCode()
	if err != nil {
		return err
	}
	admin := &models.Profile{
		Email:        cfg.Email,
		PasswordHash: string(hash),
		FullName:     cfg.FullName,
		ReferralCode: code,
		IsAdmin:      true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Info("admin profile created", zap.String("email", cfg.Email), zap.String("id", admin.ID))
	return nil
}
