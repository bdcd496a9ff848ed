package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appmatches "github.com/preston-bernstein/sportconnect-service/internal/app/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/http/middleware"
	"github.com/preston-bernstein/sportconnect-service/internal/logging"
	"github.com/preston-bernstein/sportconnect-service/internal/store"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeBadRequest    = "bad_request"
	CodeValidation    = "validation_failed"
	CodeNotFound      = "not_found"
	CodeMatchNotFound = "match_not_found"
	CodeUserNotFound  = "user_not_found"
	CodeMatchFull     = "match_full"
	CodeUnauthorized  = "unauthorized"
	CodeUnavailable   = "unavailable"
	CodeInternal      = "internal"
)

type errorBody struct {
	Error     string                  `json:"error"`
	Code      string                  `json:"code"`
	RequestID string                  `json:"requestId,omitempty"`
	Fields    []appmatches.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorBody(w, r, status, errorBody{Error: message, Code: codeForStatus(status)}, logger)
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, body errorBody, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body.RequestID = reqID
	writeJSON(w, status, body, logger)
}

// writeServiceError maps façade and store errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		logging.Error(loggerFromContext(r, logger), "request failed", err)
	}
	writeErrorBody(w, r, status, body, logger)
}

func classify(err error) (int, errorBody) {
	if vErr, ok := appmatches.AsValidationError(err); ok {
		return http.StatusBadRequest, errorBody{Error: vErr.Error(), Code: CodeValidation, Fields: vErr.Problems}
	}
	switch {
	case errors.Is(err, store.ErrMatchNotFound):
		return http.StatusNotFound, errorBody{Error: "match not found", Code: CodeMatchNotFound}
	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound, errorBody{Error: "user not found", Code: CodeUserNotFound}
	case errors.Is(err, store.ErrMatchFull):
		return http.StatusConflict, errorBody{Error: "match is full", Code: CodeMatchFull}
	case errors.Is(err, appmatches.ErrUnauthorized):
		return http.StatusUnauthorized, errorBody{Error: "unauthorized", Code: CodeUnauthorized}
	case errors.Is(err, appmatches.ErrUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, errorBody{Error: "service unavailable", Code: CodeUnavailable}
	}
	if _, ok := store.AsStorageError(err); ok {
		return http.StatusServiceUnavailable, errorBody{Error: "service unavailable", Code: CodeUnavailable}
	}
	return http.StatusInternalServerError, errorBody{Error: "internal error", Code: CodeInternal}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
