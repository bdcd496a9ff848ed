package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/sportconnect-service/internal/metrics"
	"github.com/preston-bernstein/sportconnect-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogs(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		assert.NotEmpty(t, RequestIDFromContext(r.Context()), "request id in context")
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodPost, "/matches/m1/membership", nil)

	assert.True(t, nextCalled)
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	logs := buf.String()
	assert.Contains(t, logs, "request complete")
	assert.Contains(t, logs, "status_code=418")
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFromContext(r.Context()), "generated request id")
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	rr := testutil.Serve(handler, http.MethodGet, "/matches?foo=bar", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestLoggingMiddlewareKeepsValidIncomingRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "client-id-1", RequestIDFromContext(r.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Request-ID", "client-id-1")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	assert.Equal(t, "client-id-1", rr.Header().Get("X-Request-ID"))
}

func TestLoggingMiddlewareUsesForwardedFor(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	rr := testutil.ServeRequest(handler, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Contains(t, buf.String(), "198.51.100.1")
}

func TestLoggingMiddlewareDefaultsLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rr := testutil.Serve(LoggingMiddleware(nil, nil, next), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	assert.Zero(t, w.status)
	w.WriteHeader(http.StatusAccepted)
	assert.Equal(t, http.StatusAccepted, w.status)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/matches", want: "/matches"},
		{in: "/matches/", want: "/matches/"},
		{in: "/matches/m1", want: "/matches/:id"},
		{in: "/matches/m1/membership", want: "/matches/:id/membership"},
		{in: "/matches/0190a-uuid/membership?x=1", want: "/matches/:id/membership"},
		{in: "/health", want: "/health"},
		{in: "/ready", want: "/ready"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.in), "normalizePath(%q)", tt.in)
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = withRequestID(ctx, "abc123")
	assert.Equal(t, "abc123", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(nil))
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/matches", nil)
		handler.ServeHTTP(rr, req)
	}
}
