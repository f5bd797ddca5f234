package database

import (
	"fmt"
	"time"

	"apgbuilders/internal/config"
	"apgbuilders/internal/logger"
	"apgbuilders/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Models lists every table AutoMigrate manages, parents first.
func Models() []any {
	return []any{
		&models.Site{},
		&models.Vendor{},
		&models.Worker{},
		&models.Expense{},
		&models.WorkerPayment{},
		&models.SiteIncome{},
		&models.AuditLog{},
	}
}

// Open connects to Postgres and, when enabled, migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.DBAutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	logger.Log.Info().Msg("database connected")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Log.Info().Int("tables", len(Models())).Msg("schema migrated")
	return nil
}
