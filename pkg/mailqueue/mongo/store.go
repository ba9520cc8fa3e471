package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

const (
	// DefaultCollection is the collection name used when none is configured.
	DefaultCollection = "mailqueue_snapshots"
	// DefaultName is the snapshot document id used when none is configured.
	DefaultName = "default"
)

type snapshotDoc struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store persists queue snapshots as one document per queue name.
type Store struct {
	collection *mongo.Collection
	client     *mongo.Client
	name       string
}

// Option configures a Store
type Option func(*Store)

// WithName overrides the snapshot document id
func WithName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.name = name
		}
	}
}

// New wraps an existing database handle as a snapshot store using the given
// collection name ("" means DefaultCollection).
func New(db *mongo.Database, collection string, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrDatabaseNil
	}
	if collection == "" {
		collection = DefaultCollection
	}

	s := &Store{
		collection: db.Collection(collection),
		name:       DefaultName,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Connect dials the server described by cfg, retrying until it answers a
// ping or the retry budget runs out, and returns a snapshot store bound to
// cfg.Database, cfg.Collection and cfg.Name.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for range attempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				if cfg.Name != "" {
					opts = append([]Option{WithName(cfg.Name)}, opts...)
				}
				s, err := New(client.Database(cfg.Database), cfg.Collection, opts...)
				if err != nil {
					_ = client.Disconnect(ctx)
					return nil, err
				}
				s.client = client
				return s, nil
			}
			_ = client.Disconnect(ctx)
		}

		time.Sleep(cfg.RetryInterval)
	}

	return nil, ErrFailedToConnect
}

// Close disconnects the client when the store owns one. Stores built with
// New around a shared database leave disconnecting to the owner.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// ReadSnapshot returns the stored snapshot, or mailqueue.ErrNoSnapshot when
// no document exists for the configured name.
func (s *Store) ReadSnapshot(ctx context.Context) ([]byte, error) {
	var doc snapshotDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": s.name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mailqueue.ErrNoSnapshot
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return doc.Data, nil
}

// WriteSnapshot replaces the stored snapshot.
func (s *Store) WriteSnapshot(ctx context.Context, data []byte) error {
	doc := snapshotDoc{
		Name:      s.name,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": s.name}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}
