package dashboard

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds the dashboard endpoint to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/v1/dashboard", h.Get)
}
