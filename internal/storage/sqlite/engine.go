// ABOUTME: Storage engine with initialization state machine and operation queue
// ABOUTME: Coordinates concurrent init, persistent readiness, and queued replay
package sqlite

import (
	"log"
	"sync"
	"time"

	"github.com/harper/locstream/internal/models"
	"github.com/harper/locstream/internal/storage"
)

const (
	openAttempts  = 3
	openBaseDelay = 100 * time.Millisecond
)

// initAttempt is the shared handle for one in-flight initialization.
// Every concurrent Init caller waits on the same done channel and reads
// the same outcome, so at most one attempt runs at a time.
type initAttempt struct {
	done chan struct{}
	err  error
}

// stateProbe deduplicates the persistent-state check the same way.
type stateProbe struct {
	done        chan struct{}
	provisioned bool
	err         error
}

// pendingOp is a queued data-access call awaiting readiness. done is
// buffered so the drain loop never blocks on a departed caller.
type pendingOp struct {
	run  func() error
	done chan error
}

// Engine is the SQLite-backed storage engine. It is safe for concurrent
// use; operations issued before initialization completes are queued and
// replayed in submission order once the schema is provisioned.
type Engine struct {
	path string

	mu       sync.Mutex
	state    storage.State
	db       *DB
	initErr  error        // terminal error of the last failed attempt
	attempt  *initAttempt // non-nil while state is StateInitializing
	probe    *stateProbe  // non-nil while a persistent probe is in flight
	pending  []*pendingOp
	draining bool

	// schemaPasses counts createSchema executions for this instance.
	schemaPasses int

	sessions  *SessionStore
	locations *LocationStore
	prefs     *PreferenceStore
	maint     *MaintenanceStore
}

var _ storage.Engine = (*Engine)(nil)

// NewEngine creates an engine for the database at path. No I/O happens
// until Init or the first data-access call.
func NewEngine(path string) *Engine {
	return &Engine{path: path, state: storage.StateNotInitialized}
}

var (
	sharedMu sync.Mutex
	shared   *Engine
)

// Shared returns the process-wide engine at the default path, creating
// it lazily. A closed engine is discarded and replaced on next call.
func Shared() *Engine {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil && shared.State() == storage.StateClosed {
		shared = nil
	}
	if shared == nil {
		shared = NewEngine(DefaultDBPath())
	}
	return shared
}

// State returns the current lifecycle state.
func (e *Engine) State() storage.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Ready reports whether the engine has completed initialization.
func (e *Engine) Ready() bool {
	return e.State() == storage.StateInitialized
}

// Init brings the engine to the initialized state. It is idempotent: a
// ready engine returns immediately, a concurrent caller joins the
// in-flight attempt, and a previously failed engine retries from scratch.
func (e *Engine) Init() error {
	e.mu.Lock()
	switch e.state {
	case storage.StateInitialized:
		e.mu.Unlock()
		return nil
	case storage.StateClosed:
		e.mu.Unlock()
		return storage.ErrClosed
	case storage.StateInitializing:
		a := e.attempt
		e.mu.Unlock()
		<-a.done
		return a.err
	}

	// NOT_INITIALIZED or FAILED: start a fresh attempt, clearing any
	// previous failure on entry.
	e.initErr = nil
	e.state = storage.StateInitializing
	a := &initAttempt{done: make(chan struct{})}
	e.attempt = a
	e.mu.Unlock()

	err := e.initialize()
	return e.finishInit(a, err)
}

// initialize opens the store and provisions the schema. It first consults
// the persistent probe so a restart against an existing database skips
// schema creation entirely.
func (e *Engine) initialize() error {
	provisioned, err := e.checkPersistentState()
	if err != nil {
		log.Printf("storage: persistent state probe failed: %v", err)
	}
	if provisioned {
		return nil
	}

	e.mu.Lock()
	db := e.db
	e.mu.Unlock()

	// Reuse a connection the probe already opened.
	if db == nil {
		db, err = OpenWithRetry(e.path, openAttempts, openBaseDelay)
		if err != nil {
			return err
		}
		e.adoptDB(db)
	}

	e.mu.Lock()
	e.schemaPasses++
	e.mu.Unlock()

	if err := createSchema(db); err != nil {
		return err
	}
	return persistInitState(db, storage.StateInitialized)
}

// finishInit publishes the attempt outcome. On success the pending queue
// is drained before the state flips to initialized, so queued operations
// run before anything submitted after completion. On failure every queued
// operation is completed with the initialization error.
func (e *Engine) finishInit(a *initAttempt, initErr error) error {
	e.mu.Lock()

	if e.state == storage.StateClosed {
		// Closed while initializing; release whatever we opened.
		db := e.db
		e.db = nil
		pending := e.pending
		e.pending = nil
		e.mu.Unlock()
		failPending(pending, storage.ErrClosed)
		if db != nil {
			if err := db.Close(); err != nil {
				log.Printf("storage: closing connection after shutdown: %v", err)
			}
		}
		a.err = storage.ErrClosed
		close(a.done)
		return a.err
	}

	if initErr != nil {
		wrapped := &storage.InitError{Cause: initErr}
		e.initErr = wrapped
		e.state = storage.StateFailed
		db := e.db
		e.db = nil
		pending := e.pending
		e.pending = nil
		e.attempt = nil
		e.mu.Unlock()

		failPending(pending, wrapped)
		if db != nil {
			if err := persistInitState(db, storage.StateFailed); err != nil {
				log.Printf("storage: recording failed state: %v", err)
			}
			if err := db.Close(); err != nil {
				log.Printf("storage: closing connection after failed init: %v", err)
			}
		}
		log.Printf("storage: initialization failed: %v", initErr)

		a.err = wrapped
		close(a.done)
		return wrapped
	}

	// Drain in submission order. Operations enqueued while a batch runs
	// are picked up by the next loop iteration, still ahead of anything
	// submitted once the state flips below.
	for len(e.pending) > 0 && !e.draining {
		batch := e.pending
		e.pending = nil
		e.draining = true
		e.mu.Unlock()

		for _, op := range batch {
			err := op.run()
			if err != nil {
				log.Printf("storage: queued operation failed: %v", err)
			}
			op.done <- err
		}

		e.mu.Lock()
		e.draining = false
	}

	e.state = storage.StateInitialized
	e.attempt = nil
	e.mu.Unlock()

	close(a.done)
	return nil
}

// checkPersistentState runs the provisioning probe, deduplicating
// concurrent callers onto a single in-flight check. A connection opened
// by a successful probe is adopted for reuse, never discarded.
func (e *Engine) checkPersistentState() (bool, error) {
	e.mu.Lock()
	if p := e.probe; p != nil {
		e.mu.Unlock()
		<-p.done
		return p.provisioned, p.err
	}
	p := &stateProbe{done: make(chan struct{})}
	e.probe = p
	e.mu.Unlock()

	p.provisioned, p.err = e.runStateProbe()
	close(p.done)

	e.mu.Lock()
	e.probe = nil
	e.mu.Unlock()
	return p.provisioned, p.err
}

func (e *Engine) runStateProbe() (bool, error) {
	e.mu.Lock()
	db := e.db
	e.mu.Unlock()

	opened := false
	if db == nil {
		var err error
		db, err = Open(e.path)
		if err != nil {
			// A database we cannot open is indistinguishable from a
			// missing one here; the real open during init will surface
			// the error.
			return false, nil
		}
		opened = true
	}

	state, err := readProvisionState(db)
	if err != nil || state != provisionPresent {
		if opened {
			_ = db.Close()
		}
		return false, err
	}

	if opened {
		e.adoptDB(db)
	}
	return true, nil
}

// adoptDB installs the live connection and wires the stores over it.
func (e *Engine) adoptDB(db *DB) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.db = db
	e.sessions = NewSessionStore(db)
	e.locations = NewLocationStore(db)
	e.prefs = NewPreferenceStore(db)
	e.maint = NewMaintenanceStore(db)
}

// Close shuts the engine down permanently. Pending operations are
// completed with ErrClosed and the connection is released; further use
// requires a fresh instance.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.state == storage.StateClosed {
		e.mu.Unlock()
		return nil
	}
	e.state = storage.StateClosed
	db := e.db
	e.db = nil
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	failPending(pending, storage.ErrClosed)

	if db != nil {
		if err := persistInitState(db, storage.StateClosed); err != nil {
			log.Printf("storage: recording closed state: %v", err)
		}
		if err := db.Close(); err != nil {
			log.Printf("storage: closing connection: %v", err)
		}
	}
	return nil
}

func failPending(ops []*pendingOp, err error) {
	for _, op := range ops {
		op.done <- err
	}
}

// run executes op immediately when the engine is ready. Otherwise the
// operation is queued, an initialization is triggered if none is under
// way, and the call blocks until the queued operation resolves with its
// own outcome.
func run[T any](e *Engine, op func() (T, error)) (T, error) {
	var zero T

	e.mu.Lock()
	switch e.state {
	case storage.StateInitialized:
		e.mu.Unlock()
		return op()
	case storage.StateClosed:
		e.mu.Unlock()
		return zero, storage.ErrClosed
	case storage.StateFailed:
		err := e.initErr
		e.mu.Unlock()
		if err == nil {
			err = storage.ErrNotInitialized
		}
		return zero, err
	}

	// NOT_INITIALIZED or INITIALIZING: queue and wait.
	var result T
	p := &pendingOp{done: make(chan error, 1)}
	p.run = func() error {
		var err error
		result, err = op()
		return err
	}
	e.pending = append(e.pending, p)
	needInit := e.state == storage.StateNotInitialized
	e.mu.Unlock()

	if needInit {
		go func() {
			if err := e.Init(); err != nil {
				log.Printf("storage: deferred initialization failed: %v", err)
			}
		}()
	}

	if err := <-p.done; err != nil {
		return zero, err
	}
	return result, nil
}

// Session operations.

func (e *Engine) CreateSession(ns *models.NewSession) (int64, error) {
	return run(e, func() (int64, error) { return e.sessions.Create(ns) })
}

func (e *Engine) EndSession(id int64, endTime *time.Time) error {
	_, err := run(e, func() (struct{}, error) { return struct{}{}, e.sessions.End(id, endTime) })
	return err
}

func (e *Engine) GetSessions(userID string) ([]*models.Session, error) {
	return run(e, func() ([]*models.Session, error) { return e.sessions.List(userID, false) })
}

func (e *Engine) GetActiveSessions(userID string) ([]*models.Session, error) {
	return run(e, func() ([]*models.Session, error) { return e.sessions.List(userID, true) })
}

func (e *Engine) GetSessionByID(id int64) (*models.Session, error) {
	return run(e, func() (*models.Session, error) { return e.sessions.GetByID(id) })
}

func (e *Engine) UpdateSession(id int64, upd models.SessionUpdate) error {
	_, err := run(e, func() (struct{}, error) { return struct{}{}, e.sessions.Update(id, upd) })
	return err
}

func (e *Engine) MarkSessionSynced(id int64, serverID string) error {
	_, err := run(e, func() (struct{}, error) { return struct{}{}, e.sessions.MarkSynced(id, serverID) })
	return err
}

// Location operations.

func (e *Engine) InsertLocationPoint(p *models.LocationPoint) (int64, error) {
	return run(e, func() (int64, error) { return e.locations.Insert(p) })
}

func (e *Engine) GetLocationsInRange(r models.TimeRange, page models.Pagination) (*models.LocationPage, error) {
	return run(e, func() (*models.LocationPage, error) { return e.locations.GetInRange(r, page) })
}

func (e *Engine) GetSessionLocations(sessionID int64, page models.Pagination) (*models.LocationPage, error) {
	return run(e, func() (*models.LocationPage, error) {
		sess, err := e.sessions.GetByID(sessionID)
		if err != nil {
			return nil, err
		}
		return e.locations.GetInRange(models.TimeRange{Start: sess.StartTime, End: sess.EndTime}, page)
	})
}

func (e *Engine) GetUnsyncedLocations(limit int) ([]*models.LocationPoint, error) {
	return run(e, func() ([]*models.LocationPoint, error) { return e.locations.GetUnsynced(limit) })
}

func (e *Engine) MarkLocationSynced(id int64, serverID string) error {
	_, err := run(e, func() (struct{}, error) { return struct{}{}, e.locations.MarkSynced(id, serverID) })
	return err
}

func (e *Engine) GetLocationsInBounds(b models.Bounds, sessionID int64) ([]*models.LocationPoint, error) {
	return run(e, func() ([]*models.LocationPoint, error) { return e.locations.GetInBounds(b, sessionID) })
}

func (e *Engine) GetCompleteLocationsInRange(r models.TimeRange, page models.Pagination) (*models.LocationPage, error) {
	return run(e, func() (*models.LocationPage, error) { return e.locations.GetCompleteInRange(r, page) })
}

// Preference operations.

func (e *Engine) SetUserPreferences(p *models.UserPreferences) error {
	_, err := run(e, func() (struct{}, error) { return struct{}{}, e.prefs.Set(p) })
	return err
}

func (e *Engine) GetUserPreferences(userID string) (*models.UserPreferences, error) {
	return run(e, func() (*models.UserPreferences, error) { return e.prefs.Get(userID) })
}

// Maintenance operations.

func (e *Engine) GetStats() (*models.Stats, error) {
	return run(e, func() (*models.Stats, error) { return e.maint.Stats() })
}

func (e *Engine) CleanOldData(retentionDays int) (*models.CleanupResult, error) {
	return run(e, func() (*models.CleanupResult, error) { return e.maint.CleanOldData(retentionDays) })
}

func (e *Engine) ClearAllData() error {
	_, err := run(e, func() (struct{}, error) { return struct{}{}, e.maint.ClearAll() })
	return err
}
