// Package sqlite implements the logbook storage layer on an embedded
// SQLite database: catalog introspection, schema mutation, row writes, and
// read-only query execution, with table and column metadata tracked in
// auxiliary tables.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// Store is the shared database session all operations run through. One
// Store per process; the underlying pool is pinned to a single connection
// so ordering and PRAGMA state are well defined.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	log    *zap.Logger
	closed bool

	// createdMu orders created_at generation so the timestamp never
	// decreases across inserts even when the wall clock does.
	createdMu   sync.Mutex
	lastCreated time.Time
}

// Open validates the configuration, opens the SQLite database, and
// initializes the metadata tables. The parent directory of the database
// file is created if missing.
func Open(cfg types.Config, log *zap.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	busyTimeout := cfg.BusyTimeoutMS
	if busyTimeout == 0 {
		busyTimeout = types.DefaultBusyTimeoutMS
	}

	// _txlock=immediate makes every write transaction take the database
	// write lock up front, so concurrent editors from other processes
	// serialize instead of failing mid-transaction.
	dsn := fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		cfg.DatabasePath, busyTimeout,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize schema: %w", err)
		}
	}

	log.Info("store opened", zap.String("path", cfg.DatabasePath))

	return &Store{db: db, log: log}, nil
}

// Close releases the database connection. Idempotent; after Close all
// operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	s.log.Info("store closed")
	return nil
}

// checkOpen returns ErrStoreClosed when the store has been closed.
// The caller must hold s.mu (read or write).
func (s *Store) checkOpen() error {
	if s.closed {
		return types.ErrStoreClosed
	}
	return nil
}

// newRowID generates a time-ordered UUID v7 row identifier.
func newRowID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// nextCreatedAt returns a UTC timestamp that never decreases across calls,
// regardless of wall-clock adjustments.
func (s *Store) nextCreatedAt() time.Time {
	s.createdMu.Lock()
	defer s.createdMu.Unlock()

	now := time.Now().UTC()
	if now.Before(s.lastCreated) {
		now = s.lastCreated
	}
	s.lastCreated = now
	return now
}
