package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Blank import for the sqlite driver
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

// DefaultName is the snapshot row name used when none is configured.
const DefaultName = "default"

const schema = `
CREATE TABLE IF NOT EXISTS mailqueue_snapshots (
  name       TEXT PRIMARY KEY,
  data       BLOB NOT NULL,
  updated_at INTEGER NOT NULL
);
`

// Store persists queue snapshots in a mailqueue_snapshots table.
type Store struct {
	db   *sql.DB
	name string
}

// Option configures a Store
type Option func(*Store)

// WithName overrides the snapshot row name
func WithName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.name = name
		}
	}
}

// New wraps an existing database handle as a snapshot store and creates the
// snapshot table if it does not exist yet.
func New(ctx context.Context, db *sql.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrDatabaseNil
	}

	if err := initSchema(ctx, db); err != nil {
		return nil, errors.Join(ErrFailedToInitSchema, err)
	}

	s := &Store{
		db:   db,
		name: DefaultName,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Open opens (creating if needed) the database file described by cfg and
// returns a snapshot store bound to cfg.Name.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, ErrEmptyPath
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Join(ErrFailedToOpenDatabase, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDatabase, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDatabase, err)
	}

	if cfg.Name != "" {
		opts = append([]Option{WithName(cfg.Name)}, opts...)
	}

	s, err := New(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	var journalMode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode=WAL;").Scan(&journalMode); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReadSnapshot returns the stored snapshot, or mailqueue.ErrNoSnapshot when
// no row exists for the configured name.
func (s *Store) ReadSnapshot(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM mailqueue_snapshots WHERE name = ?;`, s.name,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mailqueue.ErrNoSnapshot
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// WriteSnapshot replaces the stored snapshot.
func (s *Store) WriteSnapshot(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO mailqueue_snapshots (name, data, updated_at) VALUES (?, ?, ?);`,
		s.name, data, time.Now().UnixNano(),
	)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}
