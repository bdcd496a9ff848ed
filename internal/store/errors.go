package store

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/sportconnect-service/internal/membership"
)

// Business errors. They alias the membership engine's sentinels so callers can
// match with errors.Is against either package.
var (
	ErrMatchNotFound = membership.ErrMatchNotFound
	ErrUserNotFound  = membership.ErrUserNotFound
	ErrMatchFull     = membership.ErrMatchFull
)

// ErrNotInitialized is wrapped in a StorageError when a mutation arrives
// before Init has loaded or seeded the durable snapshot.
var ErrNotInitialized = errors.New("store not initialized")

// StorageError reports a durability failure. In-memory state is left exactly
// as it was before the failed operation.
type StorageError struct {
	Op      string
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("storage %s failed (%s): %v", e.Op, e.Backend, e.Err)
	}
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// AsStorageError attempts to unwrap an error into a StorageError.
func AsStorageError(err error) (*StorageError, bool) {
	var stErr *StorageError
	if errors.As(err, &stErr) {
		return stErr, true
	}
	return nil, false
}
