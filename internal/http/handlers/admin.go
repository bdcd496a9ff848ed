package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/sportconnect-service/internal/http/requestutil"
	"github.com/preston-bernstein/sportconnect-service/internal/logging"
	"github.com/preston-bernstein/sportconnect-service/internal/store"
)

// Flusher persists the current in-memory state on demand.
type Flusher interface {
	Flush(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	flusher Flusher
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(flusher Flusher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		flusher: flusher,
		token:   token,
		logger:  logger,
	}
}

// FlushSnapshot forces a save of the current snapshot.
// Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) FlushSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.flusher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "store not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.flusher.Flush(context.WithoutCancel(r.Context())); err != nil {
		backend := ""
		if stErr, ok := store.AsStorageError(err); ok {
			backend = stErr.Backend
		}
		logging.Error(logger, "admin flush failed", err, logging.FieldBackend, backend)
		writeError(w, r, http.StatusServiceUnavailable, "flush failed", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	logging.Info(logger, "admin snapshot flushed")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	want := []byte("Bearer " + h.token)
	got := []byte(r.Header.Get("Authorization"))
	return subtle.ConstantTimeCompare(got, want) == 1
}
