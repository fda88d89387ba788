// ABOUTME: Error taxonomy for the storage engine
// ABOUTME: Sentinel errors plus a typed initialization failure carrying its cause
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when an operation reaches the store
	// without a successful initialization and could not be queued.
	ErrNotInitialized = errors.New("storage: not initialized")

	// ErrClosed is returned after Close; the engine is permanently dead
	// and a fresh instance must be constructed.
	ErrClosed = errors.New("storage: engine closed")

	// ErrNotFound is returned when a referenced session or record is absent.
	ErrNotFound = errors.New("storage: record not found")
)

// InitError wraps the failure that aborted an initialization attempt.
// Every caller awaiting that attempt receives the same error; a later
// Init call clears it and retries from scratch.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("storage: initialization failed: %v", e.Cause)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

// IsInitError reports whether err is (or wraps) an initialization failure.
func IsInitError(err error) bool {
	var ie *InitError
	return errors.As(err, &ie)
}
