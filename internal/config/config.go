// ABOUTME: Centralized configuration for the location storage engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/harper/locstream/internal/storage/sqlite"
)

// Config holds all configuration for the storage engine and its tools.
type Config struct {
	// Storage settings
	DBPath string

	// Retention settings
	RetentionDays int

	// Query settings
	RangeLimit    int
	UnsyncedLimit int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv("LOCSTREAM_DB_PATH", sqlite.DefaultDBPath()),
		RetentionDays: getEnvInt("LOCSTREAM_RETENTION_DAYS", 30),
		RangeLimit:    getEnvInt("LOCSTREAM_RANGE_LIMIT", sqlite.DefaultRangeLimit),
		UnsyncedLimit: getEnvInt("LOCSTREAM_UNSYNCED_LIMIT", sqlite.DefaultUnsyncedLimit),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("LOCSTREAM_DB_PATH must not be empty")
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("LOCSTREAM_RETENTION_DAYS must be >= 0, got %d", c.RetentionDays)
	}
	if c.RangeLimit <= 0 {
		return fmt.Errorf("LOCSTREAM_RANGE_LIMIT must be positive, got %d", c.RangeLimit)
	}
	if c.UnsyncedLimit <= 0 {
		return fmt.Errorf("LOCSTREAM_UNSYNCED_LIMIT must be positive, got %d", c.UnsyncedLimit)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
