package snapshots

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/sportconnect-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 100 * time.Millisecond
	maxRetryInterval     = 2 * time.Second
)

// RetryingPersister retries transient load/save failures with exponential
// backoff before giving up. ErrNotFound and context errors are not retried.
type RetryingPersister struct {
	inner       Persister
	logger      *slog.Logger
	maxAttempts int
	initial     time.Duration
}

// NewRetryingPersister wraps inner with retries. Non-positive maxAttempts or
// backoff fall back to defaults.
func NewRetryingPersister(inner Persister, logger *slog.Logger, maxAttempts int, initial time.Duration) *RetryingPersister {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultRetryBackoff
	}
	return &RetryingPersister{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		initial:     initial,
	}
}

// Name reports the wrapped backend's label.
func (r *RetryingPersister) Name() string { return BackendName(r.inner) }

// Unwrap exposes the wrapped persister.
func (r *RetryingPersister) Unwrap() Persister { return r.inner }

// Load retries inner.Load.
func (r *RetryingPersister) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := r.retry(ctx, "load", func() error {
		var err error
		snap, err = r.inner.Load(ctx)
		return err
	})
	return snap, err
}

// Save retries inner.Save.
func (r *RetryingPersister) Save(ctx context.Context, snap Snapshot) error {
	return r.retry(ctx, "save", func() error {
		return r.inner.Save(ctx, snap)
	})
}

// Close closes the wrapped persister when it supports closing.
func (r *RetryingPersister) Close() error {
	if c, ok := r.inner.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *RetryingPersister) retry(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logging.Warn(logging.FromContext(ctx, r.logger), "snapshot "+op+" retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"wait_ms", wait.Milliseconds(),
			"err", err,
		)
	}
	return backoff.RetryNotify(operation, r.policy(ctx), notify)
}

func (r *RetryingPersister) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.initial
	exp.MaxInterval = maxRetryInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(r.maxAttempts-1)), ctx)
}

var _ Persister = (*RetryingPersister)(nil)
