// Package store provides the SQLite audit log for batch-normalized vitals.
//
// Every row a batch import touches is recorded: the raw strings as they were
// keyed, the normalized values when parsing succeeded, and a NULL where it
// did not. The engine itself stays stateless; only this layer persists.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.vitals/vitals.db"

// Observation is one imported row: raw inputs plus normalized outputs.
// WeightLbs and HeightIn are nil when the safe parser rejected the raw value.
type Observation struct {
	ID            int64
	SourceFile    string
	SourceLine    int
	RawWeight     string
	RawHeight     string
	WeightLbs     *float64
	HeightIn      *float64
	HeightDisplay string
	ImportedAt    time.Time
}

// StoreStats holds observability counts about the store.
type StoreStats struct {
	ObservationCount int64
	ParsedWeights    int64
	FailedWeights    int64
	ParsedHeights    int64
	FailedHeights    int64
	DBSizeBytes      int64
}

// ListOpts controls pagination for List operations.
type ListOpts struct {
	Limit      int
	Offset     int
	SourceFile string // filter by source file, empty = all
	FailedOnly bool   // only rows where weight or height failed to parse
}

// Store defines the audit-log storage interface.
type Store interface {
	AddObservation(ctx context.Context, o *Observation) (int64, error)
	AddObservationBatch(ctx context.Context, obs []*Observation) ([]int64, error)
	ListObservations(ctx context.Context, opts ListOpts) ([]*Observation, error)
	Stats(ctx context.Context) (*StoreStats, error)
	Close() error
}

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// StoreConfig holds configuration for NewStore.
type StoreConfig struct {
	DBPath string
}

// NewStore creates a new SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg StoreConfig) (Store, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = expandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate creates the schema if it doesn't exist. Idempotent.
func (s *SQLiteStore) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS observations (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	source_file    TEXT NOT NULL DEFAULT '',
	source_line    INTEGER NOT NULL DEFAULT 0,
	raw_weight     TEXT NOT NULL DEFAULT '',
	raw_height     TEXT NOT NULL DEFAULT '',
	weight_lbs     REAL,
	height_in      REAL,
	height_display TEXT NOT NULL DEFAULT '',
	imported_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_observations_source ON observations(source_file, source_line);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("creating observations schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
