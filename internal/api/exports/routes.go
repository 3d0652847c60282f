package exports

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds all export endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, activity: activity.NewLogger(s.Activity)}

	mux.HandleFunc("POST /api/v1/exports", h.Start)
	mux.HandleFunc("GET /api/v1/exports/{exportId}", h.GetStatus)
	mux.HandleFunc("GET /api/v1/exports/{exportId}/download", h.Download)
}
