// Package snapshots persists the full users+matches state as a single
// key-value record. Adapters share one JSON encoding so a snapshot written by
// one backend can be copied to another.
package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
)

// DefaultKey identifies the durable record holding the snapshot.
const DefaultKey = "sportconnect_db_v1"

// ErrNotFound indicates no snapshot has been saved under the key yet.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the full durable state at a point in time.
type Snapshot struct {
	Users   []players.Player      `json:"users"`
	Matches []domainmatches.Match `json:"matches"`
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Users:   players.CloneAll(s.Users),
		Matches: domainmatches.CloneAll(s.Matches),
	}
}

// Persister loads and saves the snapshot record.
type Persister interface {
	// Load returns ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Encode serializes a snapshot using the shared on-disk format.
func Encode(snap Snapshot) ([]byte, error) {
	if snap.Users == nil {
		snap.Users = []players.Player{}
	}
	if snap.Matches == nil {
		snap.Matches = []domainmatches.Match{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// BackendName returns a short label for p, used in logs and metrics.
func BackendName(p Persister) string {
	if named, ok := p.(interface{ Name() string }); ok {
		return named.Name()
	}
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("%T", p)
}
