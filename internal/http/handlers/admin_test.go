package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/sportconnect-service/internal/store"
)

type stubFlusher struct {
	calls int
	err   error
}

func (s *stubFlusher) Flush(ctx context.Context) error {
	s.calls++
	return s.err
}

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/flush", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminFlushRequiresAuth(t *testing.T) {
	flusher := &stubFlusher{}
	h := NewAdminHandler(flusher, "secret", nil)

	for _, token := range []string{"", "wrong"} {
		rr := httptest.NewRecorder()
		h.FlushSnapshot(rr, adminRequest(token))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "token %q", token)
	}
	assert.Zero(t, flusher.calls, "expected no flush without auth")
}

func TestAdminFlushDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubFlusher{}, "", nil)
	rr := httptest.NewRecorder()
	h.FlushSnapshot(rr, adminRequest(""))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminFlushWritesSnapshot(t *testing.T) {
	flusher := &stubFlusher{}
	h := NewAdminHandler(flusher, "secret", nil)

	rr := httptest.NewRecorder()
	h.FlushSnapshot(rr, adminRequest("secret"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, flusher.calls)
}

func TestAdminFlushFailures(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	rr := httptest.NewRecorder()
	h.FlushSnapshot(rr, adminRequest("secret"))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code, "not configured")

	flusher := &stubFlusher{err: &store.StorageError{Op: "save", Backend: "bolt", Err: errors.New("locked")}}
	h = NewAdminHandler(flusher, "secret", nil)
	rr = httptest.NewRecorder()
	h.FlushSnapshot(rr, adminRequest("secret"))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code, "flush failure")
}
