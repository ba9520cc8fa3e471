package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

// DefaultName is the snapshot row name used when none is configured.
const DefaultName = "default"

const (
	schemaSQL = `
CREATE TABLE IF NOT EXISTS mailqueue_snapshots (
  name       TEXT PRIMARY KEY,
  data       BYTEA NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	readSQL = `SELECT data FROM mailqueue_snapshots WHERE name = $1`

	writeSQL = `
INSERT INTO mailqueue_snapshots (name, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET
  data = EXCLUDED.data,
  updated_at = EXCLUDED.updated_at;`
)

// DB is the subset of pgxpool.Pool the store relies on.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists queue snapshots in a mailqueue_snapshots table.
type Store struct {
	db   DB
	pool *pgxpool.Pool
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

// New wraps an existing connection as a snapshot store and creates the
// snapshot table if it does not exist yet.
func New(ctx context.Context, db DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrPoolNil
	}

	if _, err := db.Exec(ctx, schemaSQL); err != nil {
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

// Connect establishes a connection pool with retry logic and returns a
// snapshot store bound to cfg.Name. Retries back off linearly so restarting
// services do not hammer a database that is still coming up.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var pool *pgxpool.Pool
	for i := range attempts {
		pool, err = pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
			pool = nil
		}
		time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
	}
	if pool == nil {
		return nil, errors.Join(ErrFailedToOpenConnection, err)
	}

	if cfg.Name != "" {
		opts = append([]Option{WithName(cfg.Name)}, opts...)
	}

	s, err := New(ctx, pool, opts...)
	if err != nil {
		pool.Close()
		return nil, err
	}
	s.pool = pool

	return s, nil
}

// Close releases the connection pool when the store owns one. Stores built
// with New around a shared pool leave closing to the owner.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// ReadSnapshot returns the stored snapshot, or mailqueue.ErrNoSnapshot when
// no row exists for the configured name.
func (s *Store) ReadSnapshot(ctx context.Context) ([]byte, error) {
	var data []byte
	if err := s.db.QueryRow(ctx, readSQL, s.name).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mailqueue.ErrNoSnapshot
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// WriteSnapshot replaces the stored snapshot.
func (s *Store) WriteSnapshot(ctx context.Context, data []byte) error {
	if _, err := s.db.Exec(ctx, writeSQL, s.name, data); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}
