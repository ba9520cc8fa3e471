package mailqueue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSnapshotStore persists snapshots to a single file on local disk.
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore creates a file-backed snapshot store at path, creating
// parent directories as needed.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if path == "" {
		return nil, ErrEmptySnapshotPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	return &FileSnapshotStore{path: path}, nil
}

// ReadSnapshot returns the file contents, or ErrNoSnapshot when the file does
// not exist yet.
func (s *FileSnapshotStore) ReadSnapshot(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return data, nil
}

// WriteSnapshot replaces the snapshot file through a temporary file and
// rename, so a crash mid-write never leaves a truncated snapshot behind.
func (s *FileSnapshotStore) WriteSnapshot(ctx context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}
