package snapshots

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucket = "sportconnect"

// BoltStore keeps the snapshot as one key in a BoltDB bucket.
type BoltStore struct {
	db  *bbolt.DB
	key string
}

// OpenBolt opens a BoltDB-backed store at the provided path.
func OpenBolt(path, key string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &BoltStore{db: db, key: key}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Name implements the backend label used in metrics.
func (s *BoltStore) Name() string { return "bolt" }

// Close closes the underlying BoltDB database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load fetches the snapshot record.
func (s *BoltStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if s == nil || s.db == nil {
		return Snapshot{}, fmt.Errorf("storage is not configured")
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		raw := bucket.Get([]byte(s.key))
		if raw == nil {
			return ErrNotFound
		}
		// raw is only valid inside the transaction.
		payload = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return Decode(payload)
}

// Save replaces the snapshot record in a single update transaction.
func (s *BoltStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	payload, err := Encode(snap)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		return bucket.Put([]byte(s.key), payload)
	})
}

func (s *BoltStore) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucket)); err != nil {
			return fmt.Errorf("create snapshot bucket: %w", err)
		}
		return nil
	})
}

var _ Persister = (*BoltStore)(nil)
