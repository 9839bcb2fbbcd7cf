// Package cli provides common process initialization: env file loading,
// logger setup, config validation and repository wiring.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"tally/internal/config"
	applog "tally/internal/log"
	"tally/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and sets
// it as the process default.
func SetupLogger(level slog.Level) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitRepository opens the SQLite repository and runs migrations.
// Returns the repository or exits the process on failure.
func InitRepository(logger *applog.Logger, dbPath string) *storage.Repository {
	repo, err := storage.NewRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize repository", applog.FieldError, err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
