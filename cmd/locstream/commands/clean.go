// ABOUTME: CLI command for retention cleanup of old rows
// ABOUTME: Deletes old locations and ended sessions past the cutoff
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cleanDays int
	cleanAll  bool
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete old location data",
		Long: `Delete location points older than the retention window, plus ended
sessions that started before it. Active sessions are always kept.

With --all, every session and location row is removed and the store is
left provisioned but empty.`,
		RunE: runClean,
	}

	cmd.Flags().IntVar(&cleanDays, "days", 0, "Retention window in days (default from config)")
	cmd.Flags().BoolVar(&cleanAll, "all", false, "Delete all sessions and locations")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	engine, cfg, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	if cleanAll {
		if err := engine.ClearAllData(); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All sessions and locations deleted")
		return nil
	}

	days := cleanDays
	if days == 0 {
		days = cfg.RetentionDays
	}

	result, err := engine.CleanOldData(days)
	if err != nil {
		return fmt.Errorf("cleaning old data: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d locations and %d sessions older than %d days\n",
		result.LocationsDeleted, result.SessionsDeleted, days)
	return nil
}
