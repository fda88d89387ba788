// ABOUTME: Tests for session command group
// ABOUTME: Verifies subcommand structure and flag handling

package commands

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func findSubcommand(t *testing.T, parent *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, sub := range parent.Commands() {
		if sub.Use == name || strings.HasPrefix(sub.Use, name+" ") {
			return sub
		}
	}
	t.Fatalf("Subcommand %q not found under %q", name, parent.Use)
	return nil
}

func TestNewSessionCmd(t *testing.T) {
	cmd := NewSessionCmd()

	if cmd.Use != "session" {
		t.Errorf("Use = %q, want %q", cmd.Use, "session")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	for _, name := range []string{"start", "end", "list"} {
		findSubcommand(t, cmd, name)
	}
}

func TestSessionStartCmd_Flags(t *testing.T) {
	start := findSubcommand(t, NewSessionCmd(), "start")

	for _, flagName := range []string{"name", "description", "user"} {
		if start.Flags().Lookup(flagName) == nil {
			t.Errorf("--%s flag not found on session start", flagName)
		}
	}

	if start.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestSessionEndCmd_RequiresID(t *testing.T) {
	end := findSubcommand(t, NewSessionCmd(), "end")

	if end.Args == nil {
		t.Fatal("end should declare an args validator")
	}
	if err := end.Args(end, []string{}); err == nil {
		t.Error("end with no args should fail validation")
	}
	if err := end.Args(end, []string{"3"}); err != nil {
		t.Errorf("end with one arg should pass validation, got %v", err)
	}
}

func TestSessionListCmd_Flags(t *testing.T) {
	list := findSubcommand(t, NewSessionCmd(), "list")

	activeFlag := list.Flags().Lookup("active")
	if activeFlag == nil {
		t.Fatal("--active flag not found")
	}
	if activeFlag.DefValue != "false" {
		t.Errorf("--active default = %q, want %q", activeFlag.DefValue, "false")
	}

	if list.Flags().Lookup("user") == nil {
		t.Error("--user flag not found")
	}
}
