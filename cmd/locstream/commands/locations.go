// ABOUTME: CLI command for querying stored location points
// ABOUTME: Time-range and per-session queries with pagination
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/locstream/internal/models"
)

var (
	locSince   string
	locUntil   string
	locSession int64
	locLimit   int
	locOffset  int
)

// NewLocationsCmd creates the locations command.
func NewLocationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Query stored location points",
		Long: `Query location points by time range or session, ascending by
capture timestamp.

Examples:
  locstream locations --since 2026-08-01
  locstream locations --since 1754006400 --until 1754092800
  locstream locations --session 3 --limit 50`,
		RunE: runLocations,
	}

	cmd.Flags().StringVar(&locSince, "since", "", "Range start (date, RFC3339, or Unix seconds)")
	cmd.Flags().StringVar(&locUntil, "until", "", "Optional range end")
	cmd.Flags().Int64Var(&locSession, "session", 0, "Query one session's points instead of a raw range")
	cmd.Flags().IntVar(&locLimit, "limit", 0, "Page size (default 1000)")
	cmd.Flags().IntVar(&locOffset, "offset", 0, "Page offset")

	return cmd
}

func runLocations(cmd *cobra.Command, args []string) error {
	engine, _, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	page := models.Pagination{Limit: locLimit, Offset: locOffset}
	var result *models.LocationPage

	if locSession != 0 {
		result, err = engine.GetSessionLocations(locSession, page)
		if err != nil {
			return fmt.Errorf("querying session locations: %w", err)
		}
	} else {
		if locSince == "" {
			return fmt.Errorf("either --session or --since is required")
		}
		start, err := parseTimeArg(locSince)
		if err != nil {
			return err
		}
		r := models.TimeRange{Start: start}
		if locUntil != "" {
			end, err := parseTimeArg(locUntil)
			if err != nil {
				return err
			}
			r.End = &end
		}
		result, err = engine.GetLocationsInRange(r, page)
		if err != nil {
			return fmt.Errorf("querying locations: %w", err)
		}
	}

	if result.TotalCount == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No locations found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLATITUDE\tLONGITUDE\tTIME\tSESSION\tSYNCED")
	for _, p := range result.Points {
		synced := "no"
		if p.SyncedAt != nil {
			synced = "yes"
		}
		session := "-"
		if p.SessionID != 0 {
			session = fmt.Sprintf("%d", p.SessionID)
		}
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%s\t%s\t%s\n",
			p.ID, p.Latitude, p.Longitude, p.Timestamp.Format("2006-01-02 15:04:05"), session, synced)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d (offset %d)", len(result.Points), result.TotalCount, result.Offset)
	if result.HasMore {
		fmt.Fprintf(cmd.OutOrStdout(), "; more available at offset %d", result.Offset+len(result.Points))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
