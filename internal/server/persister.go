package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/sportconnect-service/internal/config"
	"github.com/preston-bernstein/sportconnect-service/internal/snapshots"
)

// buildPersister opens the configured backend and wraps it with retries.
func buildPersister(cfg config.StorageConfig, logger *slog.Logger) (snapshots.Persister, error) {
	var inner snapshots.Persister
	switch cfg.Backend {
	case config.BackendMemory:
		inner = snapshots.NewMemoryStore()
	case config.BackendFile, "":
		inner = snapshots.NewFSStore(cfg.Path, cfg.Key)
	case config.BackendBolt:
		if err := ensureParentDir(cfg.Path); err != nil {
			return nil, err
		}
		bolt, err := snapshots.OpenBolt(cfg.Path, cfg.Key)
		if err != nil {
			return nil, err
		}
		inner = bolt
	case config.BackendSQLite:
		if err := ensureParentDir(cfg.Path); err != nil {
			return nil, err
		}
		db, err := snapshots.OpenSQLite(cfg.Path, cfg.Key)
		if err != nil {
			return nil, err
		}
		inner = db
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}

	return snapshots.NewRetryingPersister(inner, logger, cfg.RetryAttempts, cfg.RetryBackoff), nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return nil
}
