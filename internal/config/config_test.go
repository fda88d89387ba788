// ABOUTME: Tests for environment-driven configuration
// ABOUTME: Verifies defaults, overrides, and validation failures
package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath empty")
	}
	if cfg.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.RetentionDays)
	}
	if cfg.RangeLimit != 1000 {
		t.Errorf("RangeLimit = %d, want 1000", cfg.RangeLimit)
	}
	if cfg.UnsyncedLimit != 100 {
		t.Errorf("UnsyncedLimit = %d, want 100", cfg.UnsyncedLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOCSTREAM_DB_PATH", "/tmp/test-locations.db")
	t.Setenv("LOCSTREAM_RETENTION_DAYS", "7")
	t.Setenv("LOCSTREAM_RANGE_LIMIT", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "/tmp/test-locations.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, want 7", cfg.RetentionDays)
	}
	if cfg.RangeLimit != 50 {
		t.Errorf("RangeLimit = %d, want 50", cfg.RangeLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty path", func(c *Config) { c.DBPath = "" }, true},
		{"negative retention", func(c *Config) { c.RetentionDays = -1 }, true},
		{"zero range limit", func(c *Config) { c.RangeLimit = 0 }, true},
		{"zero unsynced limit", func(c *Config) { c.UnsyncedLimit = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DBPath: "/tmp/x.db", RetentionDays: 30, RangeLimit: 1000, UnsyncedLimit: 100}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
