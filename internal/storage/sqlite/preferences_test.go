// ABOUTME: Tests for user preference storage
// ABOUTME: Verifies defaults, upsert behavior, and roundtrips
package sqlite

import (
	"testing"

	"github.com/harper/locstream/internal/models"
)

func TestPreferencesDefaultWhenAbsent(t *testing.T) {
	e := initTestEngine(t)

	prefs, err := e.GetUserPreferences("nobody")
	if err != nil {
		t.Fatalf("GetUserPreferences() error = %v", err)
	}
	if !prefs.TrackingEnabled {
		t.Error("default TrackingEnabled = false")
	}
	if prefs.LocationAccuracy != models.AccuracyHigh {
		t.Errorf("default LocationAccuracy = %q, want %q", prefs.LocationAccuracy, models.AccuracyHigh)
	}
	if prefs.DataRetentionDays != 30 {
		t.Errorf("default DataRetentionDays = %d, want 30", prefs.DataRetentionDays)
	}
}

func TestPreferencesUpsert(t *testing.T) {
	e := initTestEngine(t)

	p := models.DefaultPreferences("user1")
	p.SyncInterval = 600
	if err := e.SetUserPreferences(p); err != nil {
		t.Fatalf("SetUserPreferences() error = %v", err)
	}

	got, err := e.GetUserPreferences("user1")
	if err != nil {
		t.Fatalf("GetUserPreferences() error = %v", err)
	}
	if got.SyncInterval != 600 {
		t.Errorf("SyncInterval = %d, want 600", got.SyncInterval)
	}

	p.TrackingEnabled = false
	p.LocationAccuracy = models.AccuracyLow
	p.PrivacyMode = true
	if err := e.SetUserPreferences(p); err != nil {
		t.Fatalf("second SetUserPreferences() error = %v", err)
	}

	got, err = e.GetUserPreferences("user1")
	if err != nil {
		t.Fatalf("GetUserPreferences() error = %v", err)
	}
	if got.TrackingEnabled || got.LocationAccuracy != models.AccuracyLow || !got.PrivacyMode {
		t.Errorf("upsert not applied: %+v", got)
	}

	if err := e.SetUserPreferences(&models.UserPreferences{}); err == nil {
		t.Error("SetUserPreferences with empty user id did not error")
	}
}
