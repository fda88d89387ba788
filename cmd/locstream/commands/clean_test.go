// ABOUTME: Tests for clean and stats commands
// ABOUTME: Verifies flag structure for the maintenance surface

package commands

import (
	"testing"
)

func TestNewCleanCmd(t *testing.T) {
	cmd := NewCleanCmd()

	if cmd.Use != "clean" {
		t.Errorf("Use = %q, want %q", cmd.Use, "clean")
	}

	daysFlag := cmd.Flags().Lookup("days")
	if daysFlag == nil {
		t.Fatal("--days flag not found")
	}
	if daysFlag.DefValue != "0" {
		t.Errorf("--days default = %q, want %q", daysFlag.DefValue, "0")
	}

	allFlag := cmd.Flags().Lookup("all")
	if allFlag == nil {
		t.Fatal("--all flag not found")
	}
	if allFlag.DefValue != "false" {
		t.Errorf("--all default = %q, want %q", allFlag.DefValue, "false")
	}
}

func TestNewStatsCmd(t *testing.T) {
	cmd := NewStatsCmd()

	if cmd.Use != "stats" {
		t.Errorf("Use = %q, want %q", cmd.Use, "stats")
	}

	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}
