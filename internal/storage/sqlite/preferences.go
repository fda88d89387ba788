// ABOUTME: User preference storage operations for SQLite
// ABOUTME: One row per user, written as a whole via upsert
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harper/locstream/internal/models"
)

// PreferenceStore handles per-user settings persistence.
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new PreferenceStore.
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Set upserts the full preferences row for a user.
func (s *PreferenceStore) Set(p *models.UserPreferences) error {
	if p.UserID == "" {
		return fmt.Errorf("set preferences: empty user id")
	}

	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO user_preferences (user_id, tracking_enabled, location_accuracy,
			sync_interval, data_retention_days, privacy_mode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			tracking_enabled = excluded.tracking_enabled,
			location_accuracy = excluded.location_accuracy,
			sync_interval = excluded.sync_interval,
			data_retention_days = excluded.data_retention_days,
			privacy_mode = excluded.privacy_mode,
			updated_at = excluded.updated_at
	`, p.UserID, boolToInt(p.TrackingEnabled), p.LocationAccuracy,
		p.SyncInterval, p.DataRetentionDays, boolToInt(p.PrivacyMode), now, now)
	if err != nil {
		return fmt.Errorf("set preferences for %q: %w", p.UserID, err)
	}
	return nil
}

// Get retrieves a user's preferences, falling back to defaults when no
// row exists.
func (s *PreferenceStore) Get(userID string) (*models.UserPreferences, error) {
	var (
		p               models.UserPreferences
		trackingEnabled int
		privacyMode     int
		createdAt       int64
		updatedAt       int64
	)

	err := s.db.QueryRow(`
		SELECT user_id, tracking_enabled, location_accuracy, sync_interval,
			data_retention_days, privacy_mode, created_at, updated_at
		FROM user_preferences
		WHERE user_id = ?
	`, userID).Scan(&p.UserID, &trackingEnabled, &p.LocationAccuracy,
		&p.SyncInterval, &p.DataRetentionDays, &privacyMode, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences for %q: %w", userID, err)
	}

	p.TrackingEnabled = trackingEnabled != 0
	p.PrivacyMode = privacyMode != 0
	p.CreatedAt = timeFromUnix(createdAt)
	p.UpdatedAt = timeFromUnix(updatedAt)
	return &p, nil
}
