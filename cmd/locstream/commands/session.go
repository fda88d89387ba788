// ABOUTME: CLI commands for managing tracking sessions
// ABOUTME: Start, end, and list sessions from the local store
package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/locstream/internal/models"
)

var (
	sessionName   string
	sessionDesc   string
	sessionUser   string
	sessionActive bool
)

// NewSessionCmd creates the session command group.
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage tracking sessions",
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new tracking session",
		RunE:  runSessionStart,
	}
	startCmd.Flags().StringVar(&sessionName, "name", "", "Session name")
	startCmd.Flags().StringVar(&sessionDesc, "description", "", "Session description")
	startCmd.Flags().StringVar(&sessionUser, "user", "", "Owning user id")

	endCmd := &cobra.Command{
		Use:   "end [id]",
		Short: "End a tracking session",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionEnd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE:  runSessionList,
	}
	listCmd.Flags().StringVar(&sessionUser, "user", "", "Filter by user id")
	listCmd.Flags().BoolVar(&sessionActive, "active", false, "Only active sessions")

	cmd.AddCommand(startCmd)
	cmd.AddCommand(endCmd)
	cmd.AddCommand(listCmd)

	return cmd
}

func runSessionStart(cmd *cobra.Command, args []string) error {
	engine, _, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	id, err := engine.CreateSession(&models.NewSession{
		Name:        sessionName,
		Description: sessionDesc,
		UserID:      sessionUser,
		StartTime:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Started session %d\n", id)
	return nil
}

func runSessionEnd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	engine, _, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	if err := engine.EndSession(id, nil); err != nil {
		return fmt.Errorf("ending session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ended session %d\n", id)
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	engine, _, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	var sessions []*models.Session
	if sessionActive {
		sessions, err = engine.GetActiveSessions(sessionUser)
	} else {
		sessions, err = engine.GetSessions(sessionUser)
	}
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUSER\tSTARTED\tENDED\tSYNCED")
	for _, s := range sessions {
		ended := "-"
		if s.EndTime != nil {
			ended = formatTime(*s.EndTime)
		}
		synced := "no"
		if s.SyncedAt != nil {
			synced = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, truncate(s.Name, 24), s.UserID, formatTime(s.StartTime), ended, synced)
	}
	return w.Flush()
}
