package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageConfig selects and tunes the snapshot persister.
type StorageConfig struct {
	Backend       string        `env:"STORAGE_BACKEND" envDefault:"file"`
	Path          string        `env:"STORAGE_PATH"`
	Key           string        `env:"STORAGE_KEY" envDefault:"sportconnect_db_v1"`
	RetryAttempts int           `env:"STORAGE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryBackoff  time.Duration `env:"STORAGE_RETRY_BACKOFF" envDefault:"100ms"`
}

func (c *StorageConfig) applyDefaults() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Path != "" {
		return
	}
	switch c.Backend {
	case BackendFile:
		c.Path = defaultFileDir
	case BackendBolt:
		c.Path = defaultBoltPath
	case BackendSQLite:
		c.Path = defaultSQLitePath
	}
}

func (c StorageConfig) validate() error {
	switch c.Backend {
	case BackendFile, BackendBolt, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%s: unsupported backend %q", envBackend, c.Backend)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("%s: must be at least 1, got %d", envRetries, c.RetryAttempts)
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("%s: must not be negative", envRetryDelay)
	}
	return nil
}
