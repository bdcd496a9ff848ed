// Package matches is the request/response boundary in front of the store. It
// simulates network behaviour (random latency, optional dropped calls),
// validates create requests, and otherwise delegates to the store.
package matches

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/rankings"
	"github.com/preston-bernstein/sportconnect-service/internal/logging"
	"github.com/preston-bernstein/sportconnect-service/internal/membership"
	"github.com/preston-bernstein/sportconnect-service/internal/metrics"
	"github.com/preston-bernstein/sportconnect-service/internal/snapshots"
	"github.com/preston-bernstein/sportconnect-service/internal/store"
)

const (
	DefaultMinLatency    = 400 * time.Millisecond
	DefaultMaxLatency    = 800 * time.Millisecond
	DefaultCurrentUserID = "u1"
)

// Store defines the store operations the service delegates to.
type Store interface {
	ListUsers() []players.Player
	GetUser(id string) (players.Player, error)
	ListMatches() []domainmatches.Match
	GetMatch(id string) (domainmatches.Match, error)
	Snapshot() snapshots.Snapshot
	CreateMatch(ctx context.Context, match domainmatches.Match) (domainmatches.Match, error)
	ApplyMembershipChange(ctx context.Context, matchID, userID string) (membership.Result, error)
}

// Config controls the simulated transport and the fixed session identity.
type Config struct {
	MinLatency    time.Duration
	MaxLatency    time.Duration
	FailureRate   float64
	CurrentUserID string
}

// DefaultConfig mirrors the latency range of the original client.
func DefaultConfig() Config {
	return Config{
		MinLatency:    DefaultMinLatency,
		MaxLatency:    DefaultMaxLatency,
		CurrentUserID: DefaultCurrentUserID,
	}
}

// Service coordinates match operations using a Store.
type Service struct {
	store   Store
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Recorder

	sleep  func(context.Context, time.Duration) error
	jitter func(n int64) int64
	roll   func() float64
	newID  func() (string, error)
}

// NewService constructs a Service with the provided Store.
func NewService(st Store, cfg Config, logger *slog.Logger, rec *metrics.Recorder) *Service {
	return &Service{
		store:   st,
		cfg:     cfg,
		logger:  logger,
		metrics: rec,
		sleep:   sleepCtx,
		jitter:  rand.Int64N,
		roll:    rand.Float64,
		newID:   newMatchID,
	}
}

func newMatchID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate match id: %w", err)
	}
	return id.String(), nil
}

// CurrentUser resolves the fixed session identity.
func (s *Service) CurrentUser(ctx context.Context) (players.Player, error) {
	if err := s.simulateCall(ctx); err != nil {
		return players.Player{}, err
	}
	if s.cfg.CurrentUserID == "" {
		return players.Player{}, ErrUnauthorized
	}
	user, err := s.store.GetUser(s.cfg.CurrentUserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return players.Player{}, ErrUnauthorized
		}
		return players.Player{}, err
	}
	return user, nil
}

// ListMatches returns all matches, newest first.
func (s *Service) ListMatches(ctx context.Context) ([]domainmatches.Match, error) {
	if err := s.simulateCall(ctx); err != nil {
		return nil, err
	}
	return s.store.ListMatches(), nil
}

// GetMatch returns a single match by ID.
func (s *Service) GetMatch(ctx context.Context, id string) (domainmatches.Match, error) {
	if err := s.simulateCall(ctx); err != nil {
		return domainmatches.Match{}, err
	}
	return s.store.GetMatch(id)
}

// ListUsers returns all registered players.
func (s *Service) ListUsers(ctx context.Context) ([]players.Player, error) {
	if err := s.simulateCall(ctx); err != nil {
		return nil, err
	}
	return s.store.ListUsers(), nil
}

// Rankings derives the leaderboard from a consistent snapshot.
func (s *Service) Rankings(ctx context.Context) ([]rankings.Ranking, error) {
	if err := s.simulateCall(ctx); err != nil {
		return nil, err
	}
	snap := s.store.Snapshot()
	return rankings.Derive(snap.Users, snap.Matches), nil
}

// CreateMatch validates req and stores a new match organized by
// req.OrganizerID, or by the current user when no organizer is given.
func (s *Service) CreateMatch(ctx context.Context, req CreateMatchRequest) (domainmatches.Match, error) {
	if err := s.simulateCall(ctx); err != nil {
		s.metrics.RecordMatchCreation(outcomeFor(err, ""))
		return domainmatches.Match{}, err
	}
	logger := logging.FromContext(ctx, s.logger)

	if err := req.Validate(); err != nil {
		s.metrics.RecordMatchCreation(metrics.OutcomeInvalid)
		logging.Info(logger, "match rejected", "error", err)
		return domainmatches.Match{}, err
	}

	organizerID := req.OrganizerID
	if organizerID == "" {
		organizerID = s.cfg.CurrentUserID
	}
	organizer, err := s.store.GetUser(organizerID)
	if err != nil {
		s.metrics.RecordMatchCreation(outcomeFor(err, ""))
		return domainmatches.Match{}, err
	}

	id, err := s.newID()
	if err != nil {
		s.metrics.RecordMatchCreation(metrics.OutcomeInternal)
		logging.Error(logger, "match id generation failed", err)
		return domainmatches.Match{}, err
	}
	created, err := s.store.CreateMatch(ctx, req.build(id, organizer))
	if err != nil {
		s.metrics.RecordMatchCreation(outcomeFor(err, ""))
		return domainmatches.Match{}, err
	}

	s.metrics.RecordMatchCreation(metrics.OutcomeCreated)
	logging.Info(logger, "match created",
		logging.FieldMatchID, created.ID,
		logging.FieldUserID, organizer.ID,
		"sport", string(created.Sport),
	)
	return created, nil
}

// ToggleMembership joins userID to matchID, or removes them if they are
// already on the roster. Result.Action reports which one happened.
func (s *Service) ToggleMembership(ctx context.Context, matchID, userID string) (membership.Result, error) {
	if err := s.simulateCall(ctx); err != nil {
		s.metrics.RecordMembership(outcomeFor(err, ""))
		return membership.Result{}, err
	}

	res, err := s.store.ApplyMembershipChange(ctx, matchID, userID)
	s.metrics.RecordMembership(outcomeFor(err, res.Action))
	if err != nil {
		logging.Info(logging.FromContext(ctx, s.logger), "membership change rejected",
			logging.FieldMatchID, matchID,
			logging.FieldUserID, userID,
			"error", err,
		)
		return membership.Result{}, err
	}
	return res, nil
}

func outcomeFor(err error, action membership.Action) string {
	switch {
	case err == nil && action == membership.ActionLeft:
		return metrics.OutcomeLeft
	case err == nil:
		return metrics.OutcomeJoined
	case errors.Is(err, store.ErrMatchNotFound):
		return metrics.OutcomeMatchNotFound
	case errors.Is(err, store.ErrUserNotFound):
		return metrics.OutcomeUserNotFound
	case errors.Is(err, store.ErrMatchFull):
		return metrics.OutcomeMatchFull
	case errors.Is(err, ErrUnavailable):
		return metrics.OutcomeUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		if _, ok := store.AsStorageError(err); ok {
			return metrics.OutcomeStorageError
		}
		return metrics.OutcomeUnavailable
	}
}
