// Package config centralizes environment configuration for the API server
// and the cmd/ tools.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config aggregates every runtime parameter the binaries need.
type Config struct {
	Port        string
	DatabaseURL string

	// AuthJWTSecret signs/verifies the HS256 bearer tokens issued by the
	// identity provider. Empty disables the protected routes entirely.
	AuthJWTSecret string

	// UploadsDir is the root directory for uploaded images; each upload
	// request targets a sub-folder beneath it.
	UploadsDir string

	// PublicBaseURL is prepended to per-voter links in CSV exports.
	PublicBaseURL string

	AutoMigrate bool

	LogLevel string
	LogDev   bool
}

// Load reads configuration from the environment, applying local-dev defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "5050"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AuthJWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5050"),
		AutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", true),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogDev:        os.Getenv("LOG_DEV") == "1",
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URL is empty")
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("config: invalid PORT %q: %w", cfg.Port, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch value {
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return true
	}
}
