// Package store owns the canonical users and matches and is the only writer
// of that state. Every mutation computes the next state on copies, saves the
// full snapshot, and only then swaps it in, so a failed save leaves memory
// untouched.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
	"github.com/preston-bernstein/sportconnect-service/internal/logging"
	"github.com/preston-bernstein/sportconnect-service/internal/membership"
	"github.com/preston-bernstein/sportconnect-service/internal/metrics"
	"github.com/preston-bernstein/sportconnect-service/internal/snapshots"
)

// Store keeps a thread-safe copy of the durable snapshot in memory.
type Store struct {
	mu          sync.RWMutex
	users       []players.Player
	matches     []domainmatches.Match
	initialized bool

	persister snapshots.Persister
	backend   string
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/seed/persist events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithMetrics sets the recorder used for save latency and failures.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Store) { s.metrics = rec }
}

// New constructs an empty Store backed by persister. Call Init before serving.
func New(persister snapshots.Persister, opts ...Option) *Store {
	s := &Store{
		users:     []players.Player{},
		matches:   []domainmatches.Match{},
		persister: persister,
		backend:   snapshots.BackendName(persister),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the durable snapshot, seeding fixtures when none exists yet.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.persister.Load(ctx)
	switch {
	case err == nil:
		logging.Info(s.logger, "snapshot loaded",
			logging.FieldBackend, s.backend,
			"users", len(snap.Users),
			"matches", len(snap.Matches),
		)
	case errors.Is(err, snapshots.ErrNotFound):
		snap = SeedSnapshot()
		if err := s.save(ctx, snap); err != nil {
			return err
		}
		logging.Info(s.logger, "snapshot seeded", logging.FieldBackend, s.backend)
	default:
		logging.Error(s.logger, "snapshot load failed", err, logging.FieldBackend, s.backend)
		return &StorageError{Op: "load", Backend: s.backend, Err: err}
	}

	s.commit(normalize(snap))
	s.initialized = true
	return nil
}

// Ready reports whether Init has completed successfully.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// ListUsers returns a copy of all users.
func (s *Store) ListUsers() []players.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return players.CloneAll(s.users)
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(id string) (players.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.userByID(id)
	if !ok {
		return players.Player{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return user.Clone(), nil
}

// ListMatches returns a copy of all matches, newest first.
func (s *Store) ListMatches() []domainmatches.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domainmatches.CloneAll(s.matches)
}

// GetMatch retrieves a match by ID.
func (s *Store) GetMatch(id string) (domainmatches.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.matchIndex(id)
	if idx < 0 {
		return domainmatches.Match{}, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return s.matches[idx].Clone(), nil
}

// Snapshot returns a copy of the full in-memory state.
func (s *Store) Snapshot() snapshots.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshots.Snapshot{
		Users:   players.CloneAll(s.users),
		Matches: domainmatches.CloneAll(s.matches),
	}
}

// CreateMatch stores match as the newest entry. Field values are taken as
// given; the caller supplies a process-unique ID and a valid initial state.
func (s *Store) CreateMatch(ctx context.Context, match domainmatches.Match) (domainmatches.Match, error) {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return domainmatches.Match{}, err
	}

	created := match.Clone()
	next := make([]domainmatches.Match, 0, len(s.matches)+1)
	next = append(next, created)
	next = append(next, s.matches...)

	if err := s.save(ctx, snapshots.Snapshot{Users: s.users, Matches: next}); err != nil {
		return domainmatches.Match{}, err
	}
	s.matches = next
	return created.Clone(), nil
}

// ApplyMembershipChange toggles userID's membership in matchID: members leave,
// non-members join. Lookup failures and a full match leave state unchanged
// and perform no write.
func (s *Store) ApplyMembershipChange(ctx context.Context, matchID, userID string) (membership.Result, error) {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInit(); err != nil {
		return membership.Result{}, err
	}

	idx := s.matchIndex(matchID)
	if idx < 0 {
		return membership.Result{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	user, ok := s.userByID(userID)
	if !ok {
		return membership.Result{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	res, err := membership.Toggle(s.matches[idx], user)
	if err != nil {
		return membership.Result{}, fmt.Errorf("%w: %s", err, matchID)
	}

	next := make([]domainmatches.Match, len(s.matches))
	copy(next, s.matches)
	next[idx] = res.Match

	if err := s.save(ctx, snapshots.Snapshot{Users: s.users, Matches: next}); err != nil {
		return membership.Result{}, err
	}
	s.matches = next

	logging.Debug(logging.FromContext(ctx, s.logger), "membership changed",
		logging.FieldMatchID, matchID,
		logging.FieldUserID, userID,
		logging.FieldAction, string(res.Action),
		logging.FieldCount, res.Match.CurrentPlayers,
	)
	return membership.Result{Match: res.Match.Clone(), Action: res.Action}, nil
}

// Flush persists the current state. Used on shutdown.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil
	}
	return s.save(ctx, snapshots.Snapshot{Users: s.users, Matches: s.matches})
}

// Close releases the persister when it holds resources.
func (s *Store) Close() error {
	if c, ok := s.persister.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// requireInit guards writes so an uninitialized store never overwrites the
// durable record with its empty state. Caller holds the lock.
func (s *Store) requireInit() error {
	if !s.initialized {
		return &StorageError{Op: "init", Backend: s.backend, Err: ErrNotInitialized}
	}
	return nil
}

// save must be called with the write lock held.
func (s *Store) save(ctx context.Context, snap snapshots.Snapshot) error {
	start := s.now()
	err := s.persister.Save(ctx, snap)
	s.metrics.RecordStorageSave(s.backend, s.now().Sub(start), err)
	if err != nil {
		logging.Error(logging.FromContext(ctx, s.logger), "snapshot save failed", err, logging.FieldBackend, s.backend)
		return &StorageError{Op: "save", Backend: s.backend, Err: err}
	}
	return nil
}

func (s *Store) commit(snap snapshots.Snapshot) {
	s.users = snap.Users
	s.matches = snap.Matches
}

func (s *Store) userByID(id string) (players.Player, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return players.Player{}, false
}

func (s *Store) matchIndex(id string) int {
	for i, m := range s.matches {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func normalize(snap snapshots.Snapshot) snapshots.Snapshot {
	if snap.Users == nil {
		snap.Users = []players.Player{}
	}
	if snap.Matches == nil {
		snap.Matches = []domainmatches.Match{}
	}
	return snap
}
