// ABOUTME: Aggregate statistics and maintenance result types
// ABOUTME: Produced by the stats and retention operations
package models

// Stats is a point-in-time snapshot of store contents. Counts are taken
// with independent queries, so they are only approximately consistent.
type Stats struct {
	TotalSessions     int   `json:"total_sessions"`
	ActiveSessions    int   `json:"active_sessions"`
	TotalLocations    int   `json:"total_locations"`
	UnsyncedSessions  int   `json:"unsynced_sessions"`
	UnsyncedLocations int   `json:"unsynced_locations"`
	DatabaseSizeBytes int64 `json:"database_size_bytes"`
}

// CleanupResult reports how many rows a retention pass removed.
type CleanupResult struct {
	LocationsDeleted int64 `json:"locations_deleted"`
	SessionsDeleted  int64 `json:"sessions_deleted"`
}
