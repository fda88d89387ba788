// ABOUTME: CLI command showing store counts and database size
// ABOUTME: Single aggregate read over sessions and locations
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, _, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	stats, err := engine.GetStats()
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Locations\t%d\n", stats.TotalLocations)
	fmt.Fprintf(w, "Unsynced locations\t%d\n", stats.UnsyncedLocations)
	fmt.Fprintf(w, "Sessions\t%d\n", stats.TotalSessions)
	fmt.Fprintf(w, "Active sessions\t%d\n", stats.ActiveSessions)
	fmt.Fprintf(w, "Unsynced sessions\t%d\n", stats.UnsyncedSessions)
	fmt.Fprintf(w, "Database size\t%s\n", formatBytes(stats.DatabaseSizeBytes))
	return w.Flush()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
