// Package config reads tool configuration from environment variables,
// loading a .env file first when one is present.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all tool configuration. CLI flags override these values.
type Config struct {
	// WorkbookPath is where the persistent spreadsheet lives.
	WorkbookPath string
	// IssuersPath optionally points at a CSV extending the known-issuer registry.
	IssuersPath string
	// LogLevel controls slog verbosity on stderr.
	LogLevel slog.Level
}

// Load reads configuration from the environment.
func Load() *Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	return &Config{
		WorkbookPath: getEnv("BILLSCAN_WORKBOOK", "bills.xlsx"),
		IssuersPath:  getEnv("BILLSCAN_ISSUERS", ""),
		LogLevel:     parseLevel(getEnv("BILLSCAN_LOG_LEVEL", "info")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
