// ABOUTME: SQLite schema for the location storage engine
// ABOUTME: All statements are idempotent so re-runs across restarts are safe
package sqlite

// Schema contains all table and index creation statements. Timestamps
// are integer Unix seconds throughout.
//
// locations.session_id deliberately carries no foreign key: retention may
// delete a session before its points age out, and orphaned points are
// tolerated rather than rejected.
const Schema = `
-- Metadata key-value table; records provisioning state across restarts
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    created_at INTEGER DEFAULT (strftime('%s', 'now')),
    updated_at INTEGER DEFAULT (strftime('%s', 'now'))
);

-- Tracking sessions; end_time NULL means active
CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT UNIQUE NOT NULL,
    server_id TEXT,
    user_id TEXT,
    name TEXT,
    description TEXT,
    start_time INTEGER NOT NULL,
    end_time INTEGER,
    device_info TEXT,
    app_version TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    synced_at INTEGER
);

-- Location samples; timestamp is capture time, created_at is insert time
CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    server_id TEXT,
    session_id INTEGER,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    altitude REAL,
    altitude_accuracy REAL,
    accuracy REAL,
    heading REAL,
    speed REAL,
    timestamp INTEGER NOT NULL,
    address TEXT,
    city TEXT,
    country TEXT,
    is_significant INTEGER DEFAULT 0,
    battery_level REAL,
    created_at INTEGER NOT NULL,
    synced_at INTEGER
);

-- Per-user settings
CREATE TABLE IF NOT EXISTS user_preferences (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT UNIQUE NOT NULL,
    tracking_enabled INTEGER DEFAULT 1,
    location_accuracy TEXT DEFAULT 'high',
    sync_interval INTEGER DEFAULT 300,
    data_retention_days INTEGER DEFAULT 30,
    privacy_mode INTEGER DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_sessions_session_id ON sessions(session_id);
CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_end_time ON sessions(end_time);
CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions(start_time);
CREATE INDEX IF NOT EXISTS idx_locations_session_id ON locations(session_id);
CREATE INDEX IF NOT EXISTS idx_locations_timestamp ON locations(timestamp);
CREATE INDEX IF NOT EXISTS idx_locations_coords ON locations(latitude, longitude);
CREATE INDEX IF NOT EXISTS idx_locations_synced ON locations(synced_at);
`

// SchemaVersion is the current schema version recorded in metadata. A
// version bump requires a new table-creation flow; there is no migration
// machinery here.
const SchemaVersion = 1
