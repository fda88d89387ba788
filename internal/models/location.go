// ABOUTME: LocationPoint represents one timestamped GPS sample
// ABOUTME: Includes optional quality metadata and sync bookkeeping
package models

import "time"

// LocationPoint is a single coordinate sample. Timestamp is the capture
// time reported by the producer; CreatedAt is the insert time. SessionID
// is optional (0 = not tied to a session). Latitude and longitude are
// not range-checked here; producers validate before insert.
type LocationPoint struct {
	ID               int64      `json:"id"`
	ServerID         string     `json:"server_id,omitempty"`
	SessionID        int64      `json:"session_id,omitempty"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	Altitude         *float64   `json:"altitude,omitempty"`
	AltitudeAccuracy *float64   `json:"altitude_accuracy,omitempty"`
	Accuracy         *float64   `json:"accuracy,omitempty"`
	Heading          *float64   `json:"heading,omitempty"`
	Speed            *float64   `json:"speed,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
	Address          string     `json:"address,omitempty"`
	City             string     `json:"city,omitempty"`
	Country          string     `json:"country,omitempty"`
	IsSignificant    bool       `json:"is_significant"`
	BatteryLevel     *float64   `json:"battery_level,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	SyncedAt         *time.Time `json:"synced_at,omitempty"`
}

// TimeRange bounds a location query. End is optional; nil means open-ended.
type TimeRange struct {
	Start time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the range (inclusive).
func (r TimeRange) Contains(t time.Time) bool {
	if t.Before(r.Start) {
		return false
	}
	return r.End == nil || !t.After(*r.End)
}

// Bounds is a geographic bounding box.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// Pagination controls paged location queries. Non-positive Limit falls
// back to the store default; negative Offset is treated as zero.
type Pagination struct {
	Limit  int
	Offset int
}

// LocationPage is one page of a location query plus total-count metadata.
type LocationPage struct {
	Points     []*LocationPoint `json:"points"`
	TotalCount int              `json:"total_count"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
	HasMore    bool             `json:"has_more"`
}
