package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/sportconnect-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /me", h.Me)
	mux.HandleFunc("GET /users", h.ListUsers)
	mux.HandleFunc("GET /rankings", h.Rankings)
	mux.HandleFunc("GET /matches", h.ListMatches)
	mux.HandleFunc("POST /matches", h.CreateMatch)
	mux.HandleFunc("GET /matches/{id}", h.GetMatch)
	mux.HandleFunc("POST /matches/{id}/membership", h.ToggleMembership)
	if admin != nil {
		mux.HandleFunc("POST /admin/flush", admin.FlushSnapshot)
	}
	return mux
}
