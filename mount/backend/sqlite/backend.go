package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/mwantia/kvfs/mount/backend"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// memoryDSN opens a private database that lives as long as its only connection.
const memoryDSN = ":memory:"

// SQLiteBackend stores the directory and file tables of one filesystem in SQLite.
//
// Directory entry maps are kept as JSON documents next to the directory row,
// file content as a BLOB.
//
// Each backend opens its own in-memory database, nothing is shared between
// filesystems and nothing outlives Close.
type SQLiteBackend struct {
	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteBackend() *SQLiteBackend {
	return &SQLiteBackend{}
}

// NewFactory returns a backend.Factory producing in-memory SQLite backends.
func NewFactory() backend.Factory {
	return func() (backend.EntryStorage, error) {
		return NewSQLiteBackend(), nil
	}
}

// initSchema creates the database schema.
func (sb *SQLiteBackend) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE directories (
		ino INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		parent INTEGER NOT NULL,
		entries TEXT NOT NULL
	);

	CREATE TABLE files (
		ino INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		content BLOB
	);
	`

	_, err := sb.db.ExecContext(ctx, schema)
	return err
}

// Returns the identifier name defined for this backend
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (sb *SQLiteBackend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return err
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}

	sb.db = db
	if err := sb.initSchema(ctx); err != nil {
		db.Close()
		sb.db = nil
		return err
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *SQLiteBackend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.db == nil {
		return nil
	}

	err := sb.db.Close()
	sb.db = nil
	return err
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (*SQLiteBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityDirectories,
			backend.CapabilityFiles,
			backend.CapabilityOrdered,
			backend.CapabilityVolatile,
		},
	}
}
