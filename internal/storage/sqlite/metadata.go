// ABOUTME: Metadata table access and the persistent provisioning probe
// ABOUTME: The metadata row is the source of truth for "already provisioned"
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/harper/locstream/internal/storage"
)

// Metadata keys.
const (
	metaKeyDBInitialized = "db_initialized"
	metaKeyDBVersion     = "db_version"
	metaKeyLastInit      = "last_init_timestamp"
	metaKeyInitState     = "initialization_state"
)

// provisionState is the tri-state outcome of the persistent probe.
type provisionState int

const (
	provisionUnknown provisionState = iota
	provisionAbsent
	provisionPresent
)

func setMetadata(db *DB, key, value string) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO metadata (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set metadata %q: %w", key, err)
	}
	return nil
}

// setMetadataIfAbsent seeds a default value without overwriting one that
// survived a previous initialization.
func setMetadataIfAbsent(db *DB, key, value string) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO metadata (key, value)
		VALUES (?, ?)
	`, key, value)
	if err != nil {
		return fmt.Errorf("seed metadata %q: %w", key, err)
	}
	return nil
}

func getMetadata(db *DB, key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get metadata %q: %w", key, err)
	}
	return value, nil
}

// createSchema provisions all tables and indexes, then seeds default
// metadata values that are only written when absent.
func createSchema(db *DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := setMetadataIfAbsent(db, metaKeyDBVersion, strconv.Itoa(SchemaVersion)); err != nil {
		return err
	}
	return setMetadataIfAbsent(db, metaKeyLastInit, strconv.FormatInt(time.Now().Unix(), 10))
}

// persistInitState records the engine state in metadata so a restarted
// process can tell whether provisioning already happened.
func persistInitState(db *DB, state storage.State) error {
	if err := setMetadata(db, metaKeyInitState, state.String()); err != nil {
		return err
	}
	initialized := "false"
	if state == storage.StateInitialized {
		initialized = "true"
	}
	if err := setMetadata(db, metaKeyDBInitialized, initialized); err != nil {
		return err
	}
	return setMetadata(db, metaKeyLastInit, strconv.FormatInt(time.Now().Unix(), 10))
}

// readProvisionState inspects an open database and decides whether it was
// fully provisioned by a previous run. Both the recorded state and the
// boolean flag must agree, and the data tables must actually exist; the
// metadata row alone is not trusted.
func readProvisionState(db *DB) (provisionState, error) {
	for _, table := range []string{"metadata", "sessions", "locations"} {
		ok, err := tableExists(db, table)
		if err != nil {
			return provisionUnknown, err
		}
		if !ok {
			return provisionAbsent, nil
		}
	}

	state, err := getMetadata(db, metaKeyInitState)
	if err != nil {
		return provisionUnknown, err
	}
	initialized, err := getMetadata(db, metaKeyDBInitialized)
	if err != nil {
		return provisionUnknown, err
	}

	if state == storage.StateInitialized.String() && initialized == "true" {
		return provisionPresent, nil
	}
	return provisionAbsent, nil
}

func tableExists(db *DB, name string) (bool, error) {
	var found string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check table %q: %w", name, err)
	}
	return true, nil
}
