package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gyangroup/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database named by url: postgres://... (or
// postgresql://...) or sqlite://<path>. "sqlite://:memory:" gives a private
// in-memory database, used by tests.
func Open(url string, log *slog.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		conn, err := gorm.Open(postgres.Open(url), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info("database connected", "driver", "postgres")
		return conn, nil

	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		if path != ":memory:" {
			// SQLite will not create missing parent directories.
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return nil, fmt.Errorf("create database directory: %w", err)
				}
			}
		}

		conn, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}

		// One connection: keeps an in-memory database alive across queries
		// and serialises writers.
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		log.Info("database connected", "driver", "sqlite", "path", path)
		return conn, nil
	}

	return nil, fmt.Errorf("unsupported database url: %s", url)
}

// Migrate creates or updates the schema for every model.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.Blog{}, &models.Inquiry{},
	)
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
