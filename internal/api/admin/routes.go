package admin

import (
	"net/http"
	"time"

	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds the admin maintenance endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, now: time.Now}

	mux.HandleFunc("POST /api/v1/admin/reset", h.Reset)
	mux.HandleFunc("POST /api/v1/admin/seed", h.SeedData)
}
