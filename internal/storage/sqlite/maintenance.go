// ABOUTME: Statistics and retention operations for the location store
// ABOUTME: Count queries, time-based cleanup, and full data reset
package sqlite

import (
	"fmt"
	"log"
	"time"

	"github.com/harper/locstream/internal/models"
	"github.com/harper/locstream/internal/storage"
)

// MaintenanceStore handles aggregate statistics and data retention.
type MaintenanceStore struct {
	db *DB
}

// NewMaintenanceStore creates a new MaintenanceStore.
func NewMaintenanceStore(db *DB) *MaintenanceStore {
	return &MaintenanceStore{db: db}
}

// Stats returns aggregate counts. Each count is an independent query;
// approximate consistency between them is acceptable.
func (s *MaintenanceStore) Stats() (*models.Stats, error) {
	stats := &models.Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM sessions`, &stats.TotalSessions},
		{`SELECT COUNT(*) FROM sessions WHERE end_time IS NULL`, &stats.ActiveSessions},
		{`SELECT COUNT(*) FROM locations`, &stats.TotalLocations},
		{`SELECT COUNT(*) FROM sessions WHERE synced_at IS NULL`, &stats.UnsyncedSessions},
		{`SELECT COUNT(*) FROM locations WHERE synced_at IS NULL`, &stats.UnsyncedLocations},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("stats count: %w", err)
		}
	}

	err := s.db.QueryRow(
		`SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()`,
	).Scan(&stats.DatabaseSizeBytes)
	if err != nil {
		return nil, fmt.Errorf("stats size: %w", err)
	}

	return stats, nil
}

// CleanOldData deletes location points older than the retention cutoff
// and ended sessions that started before it. Both deletes run in one
// transaction, locations first. Points younger than the cutoff whose
// session is deleted are left orphaned; readers tolerate them.
func (s *MaintenanceStore) CleanOldData(retentionDays int) (*models.CleanupResult, error) {
	if retentionDays < 0 {
		return nil, fmt.Errorf("clean old data: negative retention %d", retentionDays)
	}
	cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour).Unix()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("clean old data: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	locResult, err := tx.Exec(`DELETE FROM locations WHERE timestamp < ?`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete old locations: %w", err)
	}
	sessResult, err := tx.Exec(
		`DELETE FROM sessions WHERE end_time IS NOT NULL AND start_time < ?`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("delete old sessions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("clean old data commit: %w", err)
	}

	locationsDeleted, _ := locResult.RowsAffected()
	sessionsDeleted, _ := sessResult.RowsAffected()
	log.Printf("storage: cleaned %d old locations and %d old sessions", locationsDeleted, sessionsDeleted)

	return &models.CleanupResult{
		LocationsDeleted: locationsDeleted,
		SessionsDeleted:  sessionsDeleted,
	}, nil
}

// ClearAll deletes every session and location row and re-asserts the
// provisioned flag in metadata. Used for resets and tests.
func (s *MaintenanceStore) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM locations`); err != nil {
		return fmt.Errorf("clear locations: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clear all commit: %w", err)
	}

	return persistInitState(s.db, storage.StateInitialized)
}
