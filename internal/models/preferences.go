// ABOUTME: UserPreferences holds per-user tracking settings
// ABOUTME: One row per user, upserted as a unit
package models

import "time"

// Accuracy levels accepted for UserPreferences.LocationAccuracy.
const (
	AccuracyHigh     = "high"
	AccuracyBalanced = "balanced"
	AccuracyLow      = "low"
)

// UserPreferences is the per-user settings row.
type UserPreferences struct {
	UserID            string    `json:"user_id"`
	TrackingEnabled   bool      `json:"tracking_enabled"`
	LocationAccuracy  string    `json:"location_accuracy"`
	SyncInterval      int       `json:"sync_interval"`
	DataRetentionDays int       `json:"data_retention_days"`
	PrivacyMode       bool      `json:"privacy_mode"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultPreferences returns the settings applied to a user with no row.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:            userID,
		TrackingEnabled:   true,
		LocationAccuracy:  AccuracyHigh,
		SyncInterval:      300,
		DataRetentionDays: 30,
	}
}
