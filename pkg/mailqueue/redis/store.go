package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

// DefaultKey is the Redis key used when none is configured.
const DefaultKey = "mailqueue:snapshot"

// Store persists queue snapshots under a single Redis key.
type Store struct {
	client *redis.Client
	key    string
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the Redis key the snapshot is stored under
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New wraps an existing client as a snapshot store.
func New(client *redis.Client, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrClientNil
	}

	s := &Store{
		client: client,
		key:    DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Connect dials the server described by cfg, retrying until it answers a
// ping or the retry budget runs out, and returns a snapshot store bound to
// cfg.Key.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	connOpt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConnString, err)
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for range attempts {
		client := redis.NewClient(connOpt)
		if err := client.Ping(ctx).Err(); err == nil {
			opts := []Option{}
			if cfg.Key != "" {
				opts = append(opts, WithKey(cfg.Key))
			}
			return New(client, opts...)
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// ReadSnapshot returns the stored snapshot, or mailqueue.ErrNoSnapshot when
// the key does not exist.
func (s *Store) ReadSnapshot(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, mailqueue.ErrNoSnapshot
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// WriteSnapshot replaces the stored snapshot.
func (s *Store) WriteSnapshot(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}
