// ABOUTME: Tests for statistics, retention cleanup, and full reset
// ABOUTME: Verifies counts, cutoff behavior, and provisioning survival
package sqlite

import (
	"testing"
	"time"

	"github.com/harper/locstream/internal/models"
)

func TestGetStats(t *testing.T) {
	e := initTestEngine(t)

	ended, err := e.CreateSession(&models.NewSession{StartTime: time.Unix(1000, 0)})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	end := time.Unix(2000, 0)
	if err := e.EndSession(ended, &end); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if _, err := e.CreateSession(&models.NewSession{StartTime: time.Now()}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if err := e.MarkSessionSynced(ended, "srv-1"); err != nil {
		t.Fatalf("MarkSessionSynced() error = %v", err)
	}

	loc := insertPoint(t, e, 1000, 1, 1)
	insertPoint(t, e, 1100, 2, 2)
	if err := e.MarkLocationSynced(loc, "srv-loc"); err != nil {
		t.Fatalf("MarkLocationSynced() error = %v", err)
	}

	stats, err := e.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2", stats.TotalSessions)
	}
	if stats.ActiveSessions != 1 {
		t.Errorf("ActiveSessions = %d, want 1", stats.ActiveSessions)
	}
	if stats.TotalLocations != 2 {
		t.Errorf("TotalLocations = %d, want 2", stats.TotalLocations)
	}
	if stats.UnsyncedSessions != 1 {
		t.Errorf("UnsyncedSessions = %d, want 1", stats.UnsyncedSessions)
	}
	if stats.UnsyncedLocations != 1 {
		t.Errorf("UnsyncedLocations = %d, want 1", stats.UnsyncedLocations)
	}
	if stats.DatabaseSizeBytes <= 0 {
		t.Errorf("DatabaseSizeBytes = %d, want > 0", stats.DatabaseSizeBytes)
	}
}

func TestCleanOldDataZeroRetention(t *testing.T) {
	e := initTestEngine(t)

	// All in the past relative to a zero-day cutoff.
	oldEnded, err := e.CreateSession(&models.NewSession{StartTime: time.Unix(1000, 0)})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	end := time.Unix(2000, 0)
	if err := e.EndSession(oldEnded, &end); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	// Active session started in the past stays, whatever its age.
	oldActive, err := e.CreateSession(&models.NewSession{StartTime: time.Unix(1000, 0)})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	insertPoint(t, e, 1000, 1, 1)
	insertPoint(t, e, 2000, 2, 2)

	result, err := e.CleanOldData(0)
	if err != nil {
		t.Fatalf("CleanOldData() error = %v", err)
	}
	if result.LocationsDeleted != 2 {
		t.Errorf("LocationsDeleted = %d, want 2", result.LocationsDeleted)
	}
	if result.SessionsDeleted != 1 {
		t.Errorf("SessionsDeleted = %d, want 1", result.SessionsDeleted)
	}

	if _, err := e.GetSessionByID(oldActive); err != nil {
		t.Errorf("active session removed by retention: %v", err)
	}
	page, err := e.GetLocationsInRange(models.TimeRange{Start: time.Unix(0, 0)}, models.Pagination{})
	if err != nil {
		t.Fatalf("GetLocationsInRange() error = %v", err)
	}
	if page.TotalCount != 0 {
		t.Errorf("locations after cleanup = %d, want 0", page.TotalCount)
	}
}

func TestCleanOldDataKeepsRecentRows(t *testing.T) {
	e := initTestEngine(t)

	recent := time.Now().Add(-time.Hour)
	if _, err := e.InsertLocationPoint(&models.LocationPoint{
		Latitude: 1, Longitude: 1, Timestamp: recent,
	}); err != nil {
		t.Fatalf("InsertLocationPoint() error = %v", err)
	}
	insertPoint(t, e, time.Now().AddDate(0, 0, -40).Unix(), 2, 2)

	result, err := e.CleanOldData(30)
	if err != nil {
		t.Fatalf("CleanOldData() error = %v", err)
	}
	if result.LocationsDeleted != 1 {
		t.Errorf("LocationsDeleted = %d, want 1", result.LocationsDeleted)
	}

	page, err := e.GetLocationsInRange(models.TimeRange{Start: time.Unix(0, 0)}, models.Pagination{})
	if err != nil {
		t.Fatalf("GetLocationsInRange() error = %v", err)
	}
	if page.TotalCount != 1 {
		t.Errorf("remaining locations = %d, want 1", page.TotalCount)
	}

	if _, err := e.CleanOldData(-1); err == nil {
		t.Error("CleanOldData(-1) did not error")
	}
}

func TestClearAllData(t *testing.T) {
	e := initTestEngine(t)

	if _, err := e.CreateSession(&models.NewSession{StartTime: time.Now()}); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	insertPoint(t, e, time.Now().Unix(), 1, 1)

	if err := e.ClearAllData(); err != nil {
		t.Fatalf("ClearAllData() error = %v", err)
	}

	stats, err := e.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalSessions != 0 || stats.TotalLocations != 0 {
		t.Errorf("stats after clear = %+v, want zero rows", stats)
	}

	// The store stays provisioned: a restart must still detect it.
	state, err := readProvisionState(e.db)
	if err != nil {
		t.Fatalf("readProvisionState() error = %v", err)
	}
	if state != provisionPresent {
		t.Errorf("provision state after clear = %v, want provisioned", state)
	}
}
