package mailqueue

import (
	"context"
	"sync"
)

// MemorySnapshotStore keeps the latest snapshot in process memory. It
// provides no durability across restarts and exists for tests and for
// running the queue without a persistence backend.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemorySnapshotStore creates an empty in-memory snapshot store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// ReadSnapshot returns the last written snapshot or ErrNoSnapshot.
func (s *MemorySnapshotStore) ReadSnapshot(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrNoSnapshot
	}

	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// WriteSnapshot replaces the stored snapshot.
func (s *MemorySnapshotStore) WriteSnapshot(ctx context.Context, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = stored
	return nil
}
