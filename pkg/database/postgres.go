package database

import (
	"fmt"

	"cartAffinity/domain"
	"cartAffinity/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	logLevel := gormlogger.Silent
	if cfg.App.Environment == "development" {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates/updates the engine's tables. Kept separate so tests can run
// it against their own database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.PurchaseEvent{},
		&domain.TrackingEvent{},
		&domain.SimilarityRecord{},
		&domain.AttributionRecord{},
		&domain.Bundle{},
		&domain.BundlePurchase{},
		&domain.ShopSettings{},
		&domain.Counter{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
