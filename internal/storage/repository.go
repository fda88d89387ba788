// ABOUTME: Repository interfaces for the location storage engine
// ABOUTME: Enables testability and storage backend swapping
package storage

import (
	"time"

	"github.com/harper/locstream/internal/models"
)

// State is the engine lifecycle state.
type State int

const (
	StateNotInitialized State = iota
	StateInitializing
	StateInitialized
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNotInitialized:
		return "NOT_INITIALIZED"
	case StateInitializing:
		return "INITIALIZING"
	case StateInitialized:
		return "INITIALIZED"
	case StateFailed:
		return "FAILED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// SessionRepository defines operations for managing tracking sessions.
type SessionRepository interface {
	CreateSession(ns *models.NewSession) (int64, error)
	EndSession(id int64, endTime *time.Time) error
	GetSessions(userID string) ([]*models.Session, error)
	GetActiveSessions(userID string) ([]*models.Session, error)
	GetSessionByID(id int64) (*models.Session, error)
	UpdateSession(id int64, upd models.SessionUpdate) error
	MarkSessionSynced(id int64, serverID string) error
}

// LocationRepository defines operations for managing location points.
type LocationRepository interface {
	InsertLocationPoint(p *models.LocationPoint) (int64, error)
	GetLocationsInRange(r models.TimeRange, page models.Pagination) (*models.LocationPage, error)
	GetSessionLocations(sessionID int64, page models.Pagination) (*models.LocationPage, error)
	GetUnsyncedLocations(limit int) ([]*models.LocationPoint, error)
	MarkLocationSynced(id int64, serverID string) error
	GetLocationsInBounds(b models.Bounds, sessionID int64) ([]*models.LocationPoint, error)
	GetCompleteLocationsInRange(r models.TimeRange, page models.Pagination) (*models.LocationPage, error)
}

// PreferenceRepository defines operations for per-user settings.
type PreferenceRepository interface {
	SetUserPreferences(p *models.UserPreferences) error
	GetUserPreferences(userID string) (*models.UserPreferences, error)
}

// MaintenanceRepository defines statistics and retention operations.
type MaintenanceRepository interface {
	GetStats() (*models.Stats, error)
	CleanOldData(retentionDays int) (*models.CleanupResult, error)
	ClearAllData() error
}

// Engine combines all repositories with lifecycle management. Init is
// idempotent and safe to call concurrently; operations issued before
// readiness are queued and replayed in submission order.
type Engine interface {
	SessionRepository
	LocationRepository
	PreferenceRepository
	MaintenanceRepository
	Init() error
	Close() error
	State() State
	Ready() bool
}
