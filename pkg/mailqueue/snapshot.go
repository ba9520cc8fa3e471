package mailqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SnapshotStore durably mirrors the queue contents so they survive process
// restarts. Implementations are best-effort collaborators: the queue logs
// write failures and carries on, so a store that is down never blocks or
// fails a mutation. Backend implementations live in the redis, sqlite,
// postgres, s3, and mongo subpackages; MemorySnapshotStore and
// FileSnapshotStore are provided here.
type SnapshotStore interface {
	// ReadSnapshot returns the most recently written snapshot, or
	// ErrNoSnapshot when none has been written yet.
	ReadSnapshot(ctx context.Context) ([]byte, error)

	// WriteSnapshot replaces the previously written snapshot.
	WriteSnapshot(ctx context.Context, data []byte) error
}

const snapshotVersion = 1

// snapshot is the versioned envelope written to a SnapshotStore. Lifetime
// counters are not part of it; they describe the process, not the queue
// contents.
type snapshot struct {
	Version  int       `json:"version"`
	SavedAt  time.Time `json:"saved_at"`
	Messages []Message `json:"messages"`
}

func encodeSnapshot(msgs []Message, now time.Time) ([]byte, error) {
	return json.Marshal(snapshot{
		Version:  snapshotVersion,
		SavedAt:  now,
		Messages: msgs,
	})
}

func decodeSnapshot(data []byte) ([]Message, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Join(ErrSnapshotCorrupt, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrSnapshotCorrupt, snap.Version)
	}
	return snap.Messages, nil
}
