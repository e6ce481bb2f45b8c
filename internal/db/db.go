package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/phone-reserve/internal/auth"
	"github.com/BruksfildServices01/phone-reserve/internal/config"
	"github.com/BruksfildServices01/phone-reserve/internal/models"
	"github.com/BruksfildServices01/phone-reserve/internal/timezone"
)

// activeSlotIndex is what actually guarantees one live reservation per
// store, date and time.
const activeSlotIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS ux_reservations_active_slot
ON reservations (store_id, reservation_date, reservation_time)
WHERE status IN ('pending', 'confirmed')`

func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := db.Exec(`
        UPDATE stores
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone).Error; err != nil {
		log.Warn().Err(err).Msg("store timezone backfill failed")
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.Reservation{},
		&models.Favorite{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no such user exists yet.
func EnsureAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, log zerolog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Name:         "관리자",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		Role:         string(auth.RoleAdmin),
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info().Str("email", admin.Email).Msg("bootstrap admin created")
	return nil
}

// StoreApproved backs middleware.RequireApprovedStore.
func StoreApproved(db *gorm.DB) func(ctx context.Context, storeID uint) (bool, error) {
	return func(ctx context.Context, storeID uint) (bool, error) {
		var count int64
		err := db.WithContext(ctx).
			Model(&models.Store{}).
			Where("id = ? AND approved = ?", storeID, true).
			Count(&count).Error
		return count > 0, err
	}
}
