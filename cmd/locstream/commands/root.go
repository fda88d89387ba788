// ABOUTME: Root CLI command wiring all subcommands and global flags
// ABOUTME: Entry point for session, location, stats, and maintenance commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagQuiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locstream",
		Short: "Local storage engine for location tracking",
		Long: `locstream manages the on-device store of GPS samples and
tracking sessions. The store provisions itself on first use and
survives process kills without losing data.

Examples:
  locstream session start --name "morning run"
  locstream session list --active
  locstream locations --since 2026-08-01
  locstream stats
  locstream clean --days 30`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewSessionCmd())
	cmd.AddCommand(NewLocationsCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewCleanCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
