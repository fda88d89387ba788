// ABOUTME: Session represents one bounded interval of location tracking
// ABOUTME: Stored in SQLite with local and optional server-assigned IDs
package models

import "time"

// Session is a tracking session. ID is the local auto-increment key;
// SessionID is the public UUID handed to collaborators. A nil EndTime
// means the session is still active.
type Session struct {
	ID          int64      `json:"id"`
	SessionID   string     `json:"session_id"`
	ServerID    string     `json:"server_id,omitempty"`
	UserID      string     `json:"user_id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	DeviceInfo  string     `json:"device_info,omitempty"`
	AppVersion  string     `json:"app_version,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SyncedAt    *time.Time `json:"synced_at,omitempty"`
}

// Active reports whether the session has not been ended.
func (s *Session) Active() bool {
	return s.EndTime == nil
}

// NewSession carries the caller-supplied fields for session creation.
type NewSession struct {
	Name        string
	Description string
	UserID      string
	DeviceInfo  string
	AppVersion  string
	StartTime   time.Time
}

// SessionUpdate is a partial update; nil fields are left untouched.
type SessionUpdate struct {
	Name        *string
	Description *string
	EndTime     *time.Time
}

// Empty reports whether the update would change nothing.
func (u SessionUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.EndTime == nil
}
