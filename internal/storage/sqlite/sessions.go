// ABOUTME: Session storage operations for SQLite
// ABOUTME: Implements CRUD, active-session queries, and sync bookkeeping
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harper/locstream/internal/models"
	"github.com/harper/locstream/internal/storage"
)

const sessionColumns = `id, session_id, server_id, user_id, name, description,
	start_time, end_time, device_info, app_version, created_at, updated_at, synced_at`

// SessionStore handles session persistence.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create inserts a new session and returns its local id. The public
// session UUID is generated here; created_at and updated_at are set to
// now and end_time is left open.
func (s *SessionStore) Create(ns *models.NewSession) (int64, error) {
	startTime := ns.StartTime
	if startTime.IsZero() {
		startTime = time.Now()
	}
	now := time.Now().Unix()

	result, err := s.db.Exec(`
		INSERT INTO sessions (session_id, user_id, name, description, start_time,
			device_info, app_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), nullString(ns.UserID), nullString(ns.Name),
		nullString(ns.Description), startTime.Unix(),
		nullString(ns.DeviceInfo), nullString(ns.AppVersion), now, now)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create session id: %w", err)
	}
	return id, nil
}

// End closes a session. A nil endTime defaults to now. Ending an already
// ended session just moves its end_time; no prior-state validation.
func (s *SessionStore) End(id int64, endTime *time.Time) error {
	end := time.Now()
	if endTime != nil {
		end = *endTime
	}

	result, err := s.db.Exec(`
		UPDATE sessions SET end_time = ?, updated_at = ? WHERE id = ?
	`, end.Unix(), time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("end session %d: %w", id, err)
	}
	return requireRow(result, id)
}

// List returns sessions ordered by start time descending, optionally
// filtered by user and/or restricted to active (not yet ended) ones.
func (s *SessionStore) List(userID string, activeOnly bool) ([]*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	var clauses []string
	var args []interface{}

	if activeOnly {
		clauses = append(clauses, "end_time IS NULL")
	}
	if userID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, userID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY start_time DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanSessions(rows)
}

// GetByID retrieves a single session.
func (s *SessionStore) GetByID(id int64) (*models.Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return sess, nil
}

// Update applies a partial update; nil fields are untouched and a fully
// empty update is a no-op that does not bump updated_at.
func (s *SessionStore) Update(id int64, upd models.SessionUpdate) error {
	if upd.Empty() {
		return nil
	}

	var sets []string
	var args []interface{}

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, nullString(*upd.Name))
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*upd.Description))
	}
	if upd.EndTime != nil {
		sets = append(sets, "end_time = ?")
		args = append(args, upd.EndTime.Unix())
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().Unix(), id)

	result, err := s.db.Exec(
		`UPDATE sessions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update session %d: %w", id, err)
	}
	return requireRow(result, id)
}

// MarkSynced records the server-assigned id and sync time.
func (s *SessionStore) MarkSynced(id int64, serverID string) error {
	result, err := s.db.Exec(`
		UPDATE sessions SET server_id = ?, synced_at = ?, updated_at = ? WHERE id = ?
	`, serverID, time.Now().Unix(), time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("mark session %d synced: %w", id, err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("session %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		sess       models.Session
		serverID   sql.NullString
		userID     sql.NullString
		name       sql.NullString
		desc       sql.NullString
		startTime  int64
		endTime    sql.NullInt64
		deviceInfo sql.NullString
		appVersion sql.NullString
		createdAt  int64
		updatedAt  int64
		syncedAt   sql.NullInt64
	)

	err := row.Scan(&sess.ID, &sess.SessionID, &serverID, &userID, &name, &desc,
		&startTime, &endTime, &deviceInfo, &appVersion, &createdAt, &updatedAt, &syncedAt)
	if err != nil {
		return nil, err
	}

	sess.ServerID = serverID.String
	sess.UserID = userID.String
	sess.Name = name.String
	sess.Description = desc.String
	sess.DeviceInfo = deviceInfo.String
	sess.AppVersion = appVersion.String
	sess.StartTime = timeFromUnix(startTime)
	sess.EndTime = timePtrFromNull(endTime)
	sess.CreatedAt = timeFromUnix(createdAt)
	sess.UpdatedAt = timeFromUnix(updatedAt)
	sess.SyncedAt = timePtrFromNull(syncedAt)
	return &sess, nil
}

func scanSessions(rows *sql.Rows) ([]*models.Session, error) {
	var sessions []*models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
