package snapshots

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps the snapshot as a JSON file under basePath.
type FSStore struct {
	basePath string
	key      string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath, key string) *FSStore {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &FSStore{basePath: basePath, key: key}
}

// Name implements the backend label used in metrics.
func (s *FSStore) Name() string { return "file" }

// Path returns the snapshot file location.
func (s *FSStore) Path() string {
	if s == nil {
		return ""
	}
	return SnapshotPath(s.basePath, s.key)
}

// Load reads {basePath}/{key}.json.
func (s *FSStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if s == nil {
		return Snapshot{}, errors.New("snapshot store not configured")
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}

// Save writes the snapshot atomically via a temp file and rename.
func (s *FSStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	target := s.Path()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *FSStore) Close() error { return nil }

var _ Persister = (*FSStore)(nil)
