// ABOUTME: Location point storage operations for SQLite
// ABOUTME: Implements inserts, paged range queries, bounds and sync queries
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harper/locstream/internal/models"
	"github.com/harper/locstream/internal/storage"
)

const (
	// DefaultRangeLimit caps a range-query page when the caller supplies none.
	DefaultRangeLimit = 1000
	// DefaultUnsyncedLimit caps an unsynced batch when the caller supplies none.
	DefaultUnsyncedLimit = 100
)

const locationColumns = `id, server_id, session_id, latitude, longitude, altitude,
	altitude_accuracy, accuracy, heading, speed, timestamp, address, city, country,
	is_significant, battery_level, created_at, synced_at`

// LocationStore handles location point persistence.
type LocationStore struct {
	db *DB
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(db *DB) *LocationStore {
	return &LocationStore{db: db}
}

// Insert stores a location point and returns its id. A zero Timestamp
// defaults to now; created_at is always the insert time.
func (s *LocationStore) Insert(p *models.LocationPoint) (int64, error) {
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	result, err := s.db.Exec(`
		INSERT INTO locations (server_id, session_id, latitude, longitude, altitude,
			altitude_accuracy, accuracy, heading, speed, timestamp, address, city,
			country, is_significant, battery_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullString(p.ServerID), nullInt64(p.SessionID), p.Latitude, p.Longitude,
		nullFloat(p.Altitude), nullFloat(p.AltitudeAccuracy), nullFloat(p.Accuracy),
		nullFloat(p.Heading), nullFloat(p.Speed), ts.Unix(),
		nullString(p.Address), nullString(p.City), nullString(p.Country),
		boolToInt(p.IsSignificant), nullFloat(p.BatteryLevel), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert location id: %w", err)
	}
	return id, nil
}

// GetInRange returns one page of points with timestamp >= r.Start (and
// <= r.End when set), ascending by timestamp, plus the total match count.
func (s *LocationStore) GetInRange(r models.TimeRange, page models.Pagination) (*models.LocationPage, error) {
	where := "timestamp >= ?"
	args := []interface{}{r.Start.Unix()}
	if r.End != nil {
		where += " AND timestamp <= ?"
		args = append(args, r.End.Unix())
	}
	return s.pageQuery(where, args, page)
}

// GetCompleteInRange is GetInRange restricted to points whose quality
// fields are all present: accuracy, speed, altitude, battery level, and
// non-empty address and city.
func (s *LocationStore) GetCompleteInRange(r models.TimeRange, page models.Pagination) (*models.LocationPage, error) {
	where := `timestamp >= ?
		AND accuracy IS NOT NULL
		AND speed IS NOT NULL
		AND altitude IS NOT NULL
		AND battery_level IS NOT NULL
		AND address IS NOT NULL AND address != ''
		AND city IS NOT NULL AND city != ''`
	args := []interface{}{r.Start.Unix()}
	if r.End != nil {
		where += " AND timestamp <= ?"
		args = append(args, r.End.Unix())
	}
	return s.pageQuery(where, args, page)
}

func (s *LocationStore) pageQuery(where string, args []interface{}, page models.Pagination) (*models.LocationPage, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = DefaultRangeLimit
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM locations WHERE `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count locations: %w", err)
	}

	query := `SELECT ` + locationColumns + ` FROM locations WHERE ` + where +
		` ORDER BY timestamp ASC LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	points, err := scanLocations(rows)
	if err != nil {
		return nil, err
	}

	return &models.LocationPage{
		Points:     points,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    offset+len(points) < total,
	}, nil
}

// GetUnsynced returns points not yet acknowledged by a remote system,
// ascending by timestamp.
func (s *LocationStore) GetUnsynced(limit int) ([]*models.LocationPoint, error) {
	if limit <= 0 {
		limit = DefaultUnsyncedLimit
	}

	rows, err := s.db.Query(`
		SELECT `+locationColumns+` FROM locations
		WHERE synced_at IS NULL
		ORDER BY timestamp ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query unsynced locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanLocations(rows)
}

// MarkSynced records the server-assigned id and sync time.
func (s *LocationStore) MarkSynced(id int64, serverID string) error {
	result, err := s.db.Exec(`
		UPDATE locations SET server_id = ?, synced_at = ? WHERE id = ?
	`, serverID, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("mark location %d synced: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("location %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// GetInBounds returns points inside a geographic bounding box, optionally
// filtered by session, descending by timestamp.
func (s *LocationStore) GetInBounds(b models.Bounds, sessionID int64) ([]*models.LocationPoint, error) {
	query := `
		SELECT ` + locationColumns + ` FROM locations
		WHERE latitude BETWEEN ? AND ?
		AND longitude BETWEEN ? AND ?`
	args := []interface{}{b.South, b.North, b.West, b.East}

	if sessionID != 0 {
		query += " AND session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY timestamp DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query locations in bounds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanLocations(rows)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanLocations(rows *sql.Rows) ([]*models.LocationPoint, error) {
	var points []*models.LocationPoint
	for rows.Next() {
		var (
			p             models.LocationPoint
			serverID      sql.NullString
			sessionID     sql.NullInt64
			altitude      sql.NullFloat64
			altAccuracy   sql.NullFloat64
			accuracy      sql.NullFloat64
			heading       sql.NullFloat64
			speed         sql.NullFloat64
			timestamp     int64
			address       sql.NullString
			city          sql.NullString
			country       sql.NullString
			isSignificant int
			battery       sql.NullFloat64
			createdAt     int64
			syncedAt      sql.NullInt64
		)

		err := rows.Scan(&p.ID, &serverID, &sessionID, &p.Latitude, &p.Longitude,
			&altitude, &altAccuracy, &accuracy, &heading, &speed, &timestamp,
			&address, &city, &country, &isSignificant, &battery, &createdAt, &syncedAt)
		if err != nil {
			return nil, err
		}

		p.ServerID = serverID.String
		p.SessionID = sessionID.Int64
		p.Altitude = floatPtrFromNull(altitude)
		p.AltitudeAccuracy = floatPtrFromNull(altAccuracy)
		p.Accuracy = floatPtrFromNull(accuracy)
		p.Heading = floatPtrFromNull(heading)
		p.Speed = floatPtrFromNull(speed)
		p.Timestamp = timeFromUnix(timestamp)
		p.Address = address.String
		p.City = city.String
		p.Country = country.String
		p.IsSignificant = isSignificant != 0
		p.BatteryLevel = floatPtrFromNull(battery)
		p.CreatedAt = timeFromUnix(createdAt)
		p.SyncedAt = timePtrFromNull(syncedAt)

		points = append(points, &p)
	}
	return points, rows.Err()
}
