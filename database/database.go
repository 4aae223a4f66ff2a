package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/rooms"
	"nutrition-app/internal/domain/tracking"
	"nutrition-app/internal/domain/users"
)

// Open connects to Postgres and migrates every domain model.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// unique violations come back as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	// REQUIRED for gen_random_uuid()
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		// core
		&users.User{},

		// billing
		&billing.Payment{},
		&billing.WebhookLog{},

		// tracking
		&tracking.MealLog{},
		&tracking.HydrationLog{},
		&tracking.WeightLog{},

		// rooms
		&rooms.Room{},
		&rooms.RoomMember{},
		&rooms.MealPlan{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
