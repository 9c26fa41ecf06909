package database

import (
	"context"
	"fmt"
	"time"

	"github.com/storyshare/core/internal/config"
	"github.com/storyshare/core/internal/models"
	"github.com/storyshare/core/internal/repositories/categories"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and, when configured, migrates the schema
// and seeds the default categories.
func Connect(ctx context.Context, cfg *config.AppConfig) (*gorm.DB, error) {
	db, err := openDB(cfg.Database.DSNValue(), resolveLogLevel(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.Database.ShouldAutoMigrate() {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		if err := Seed(ctx, categories.NewGormRepository(db)); err != nil {
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}
	return db, nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

func openDB(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               dsn,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Migrate runs GORM auto-migration. The bookmark model carries the composite
// unique index on (user_id, story_id) that backs the toggle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.CategoryModel{},
		&models.StoryModel{},
		&models.BookmarkModel{},
	)
}

// Seed creates the default categories that are missing.
func Seed(ctx context.Context, repo categories.Repository) error {
	return repo.SeedIfEmpty(ctx, models.DefaultCategories)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
