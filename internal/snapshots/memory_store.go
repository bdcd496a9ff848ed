package snapshots

import (
	"context"
	"sync"
)

// MemoryStore holds the encoded snapshot in memory. It round-trips through
// Encode/Decode so callers observe the same copy semantics as durable backends.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Name implements the backend label used in metrics.
func (s *MemoryStore) Name() string { return "memory" }

// Load returns the last saved snapshot.
func (s *MemoryStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return Snapshot{}, ErrNotFound
	}
	return Decode(s.data)
}

// Save stores an encoded copy of snap.
func (s *MemoryStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.saves++
	return nil
}

// Saves reports how many successful saves have happened.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

var _ Persister = (*MemoryStore)(nil)
