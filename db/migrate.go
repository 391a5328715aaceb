package db

import (
	"fmt"

	"go-bank-simulator/config"
	"go-bank-simulator/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies any pending schema migrations before the application
// starts serving operations.
func Migrate() error {
	cfg := config.AppConfig.Database

	databaseURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	sourceURL := fmt.Sprintf("file://%s", config.AppConfig.Migrations.Path)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to initialize migrations")
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Log.WithError(err).Error("Failed to apply migrations")
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Log.Info("Database schema is up to date")
	return nil
}
