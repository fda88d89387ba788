// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Engine setup and display formatting helpers
package commands

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/harper/locstream/internal/config"
	"github.com/harper/locstream/internal/storage/sqlite"
)

// openEngine loads configuration and returns an initialized engine. The
// caller owns the engine and must Close it.
func openEngine() (*sqlite.Engine, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	engine := sqlite.NewEngine(cfg.DBPath)
	if err := engine.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}
	return engine, cfg, nil
}

// formatTime formats a time for display, relative when recent.
func formatTime(t time.Time) string {
	diff := time.Since(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02 15:04")
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// parseTimeArg accepts Unix seconds or a date in 2006-01-02 form.
func parseTimeArg(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	var sec int64
	if _, err := fmt.Sscanf(value, "%d", &sec); err == nil && sec > 0 {
		return time.Unix(sec, 0), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want 2006-01-02, RFC3339, or Unix seconds)", value)
}
