// Package sqlite implements the embedded relational store for svcledger.
// SQLite is the query engine; a single JSON snapshot file is the durable
// copy, reloaded on every Attach and rewritten after every mutation.
// See docs/ARCHITECTURE.md § Storage Engine.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/opsledger/svcledger/pkg/types"
)

// scratchDBName is the working SQLite database inside DataDir. It is
// disposable: every Attach removes it and rebuilds from the snapshot.
const scratchDBName = "ledger.db"

// Store owns the embedded SQLite database and the durable snapshot. All
// statements are parameterized; a mutex serializes mutating access so a
// record/complete pair can never interleave with another writer.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      zerolog.Logger
}

// NewStore creates a detached Store. Call Attach with a Config to
// initialize it.
func NewStore(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// Attach initializes the store: creates DataDir if needed, opens a fresh
// scratch database, applies the schema and additive migrations, then either
// reloads the durable snapshot or seeds demo data on first run.
// Returns ErrAlreadyAttached if called while attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data dir: %v", types.ErrStorage, err)
	}
	config.DataDir = dataDir

	// The scratch database is rebuilt from the snapshot on every attach.
	dbPath := filepath.Join(dataDir, scratchDBName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: opening database: %v", types.ErrStorage, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("%w: enabling foreign keys: %v", types.ErrStorage, err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("%w: creating schema: %v", types.ErrStorage, err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("%w: creating indexes: %v", types.ErrStorage, err)
		}
	}

	if err := applyMigrations(db, s.log); err != nil {
		db.Close()
		return fmt.Errorf("applying migrations: %w", err)
	}

	s.db = db
	s.config = config

	found, err := s.loadSnapshot()
	if err != nil {
		db.Close()
		s.db = nil
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if !found {
		if err := seedDemoData(db); err != nil {
			db.Close()
			s.db = nil
			return fmt.Errorf("seeding demo data: %w", err)
		}
		if err := s.persistSnapshotLocked(); err != nil {
			db.Close()
			s.db = nil
			return fmt.Errorf("persisting seeded snapshot: %w", err)
		}
		s.log.Info().Str("data_dir", dataDir).Msg("seeded fresh store")
	} else {
		s.log.Debug().Str("data_dir", dataDir).Msg("snapshot loaded")
	}

	s.attached = true
	return nil
}

// Detach closes the database and releases resources. Idempotent. After
// Detach, operations return ErrStoreDetached. The snapshot already holds
// every committed mutation, so nothing is flushed here.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("%w: closing database: %v", types.ErrStorage, err)
		}
		s.db = nil
	}

	s.attached = false
	return nil
}

// Exec runs a parameterized non-SELECT statement.
func (s *Store) Exec(query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return mapError(err)
	}
	return nil
}

// ExecInsert runs a parameterized INSERT and returns the engine-assigned
// row id.
func (s *Store) ExecInsert(query string, args ...any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return 0, types.ErrStoreDetached
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: reading insert id: %v", types.ErrStorage, err)
	}
	return id, nil
}

// Query runs a parameterized SELECT and returns the rows. An empty result
// is a valid rows set, not an error.
func (s *Store) Query(query string, args ...any) (*sql.Rows, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}

// QueryRow runs a parameterized SELECT expected to return at most one row.
func (s *Store) QueryRow(query string, args ...any) (*sql.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return s.db.QueryRow(query, args...), nil
}

// WithTx runs fn inside a transaction. The transaction is rolled back when
// fn returns an error, so paired writes apply all-or-nothing.
func (s *Store) WithTx(fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", types.ErrStorage, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", types.ErrStorage, err)
	}
	return nil
}

// Persist serializes the entire store to the snapshot file, fully replacing
// the prior blob. Callers invoke this after every successful mutation; an
// operation is not complete until its persist succeeds.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	return s.persistSnapshotLocked()
}

// Classify maps a raw driver error onto the store error taxonomy. Callers
// running statements inside WithTx use it to classify tx.Exec failures the
// same way Exec does.
func Classify(err error) error {
	return mapError(err)
}

// mapError classifies a driver error into the store error taxonomy.
// Constraint violations (uniqueness, foreign keys) map to ErrConstraint;
// everything else is ErrStorage.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "constraint") || strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "FOREIGN KEY") {
		return fmt.Errorf("%w: %v", types.ErrConstraint, err)
	}
	return fmt.Errorf("%w: %v", types.ErrStorage, err)
}
