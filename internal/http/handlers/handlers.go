package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"strings"

	appmatches "github.com/preston-bernstein/sportconnect-service/internal/app/matches"
	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/rankings"
	"github.com/preston-bernstein/sportconnect-service/internal/logging"
	"github.com/preston-bernstein/sportconnect-service/internal/membership"
)

const maxBodyBytes = 1 << 20

// Service is the façade surface the handlers expose over HTTP.
type Service interface {
	CurrentUser(ctx context.Context) (players.Player, error)
	ListMatches(ctx context.Context) ([]domainmatches.Match, error)
	GetMatch(ctx context.Context, id string) (domainmatches.Match, error)
	ListUsers(ctx context.Context) ([]players.Player, error)
	Rankings(ctx context.Context) ([]rankings.Ranking, error)
	CreateMatch(ctx context.Context, req appmatches.CreateMatchRequest) (domainmatches.Match, error)
	ToggleMembership(ctx context.Context, matchID, userID string) (membership.Result, error)
}

// Handler wires HTTP routes to the match service.
type Handler struct {
	svc     Service
	logger  *slog.Logger
	readyFn func() bool
}

// NewHandler constructs a Handler. readyFn may be nil, in which case the
// service always reports ready.
func NewHandler(svc Service, logger *slog.Logger, readyFn func() bool) *Handler {
	return &Handler{
		svc:     svc,
		logger:  logger,
		readyFn: readyFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once the store has loaded its snapshot.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.readyFn != nil && !h.readyFn() {
		writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Me returns the current session user.
func (h *Handler) Me(w nethttp.ResponseWriter, r *nethttp.Request) {
	user, err := h.svc.CurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, user, h.logger)
}

// ListMatches returns every match, newest first.
func (h *Handler) ListMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.svc.ListMatches(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// GetMatch returns one match by its path ID.
func (h *Handler) GetMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	matchID := strings.TrimSpace(r.PathValue("id"))
	if matchID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "match id is required", h.logger)
		return
	}
	match, err := h.svc.GetMatch(r.Context(), matchID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, match, h.logger)
}

// ListUsers returns every registered player.
func (h *Handler) ListUsers(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// Rankings returns the leaderboard.
func (h *Handler) Rankings(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.svc.Rankings(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, list, h.logger)
}

// CreateMatch decodes a create request and returns the stored match.
func (h *Handler) CreateMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req appmatches.CreateMatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	created, err := h.svc.CreateMatch(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusCreated, created, h.logger)
}

type membershipRequest struct {
	UserID string `json:"userId"`
}

// ToggleMembership joins or leaves the match named in the path.
func (h *Handler) ToggleMembership(w nethttp.ResponseWriter, r *nethttp.Request) {
	matchID := strings.TrimSpace(r.PathValue("id"))
	if matchID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return
	}

	var req membershipRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "userId is required", h.logger)
		return
	}

	res, err := h.svc.ToggleMembership(r.Context(), matchID, userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "membership toggled",
		logging.FieldMatchID, matchID,
		logging.FieldUserID, userID,
		logging.FieldAction, string(res.Action),
	)
	writeJSON(w, nethttp.StatusOK, res, h.logger)
}

func decodeBody(w nethttp.ResponseWriter, r *nethttp.Request, dest any) error {
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
