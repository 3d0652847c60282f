package deals

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds all deal endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, activity: activity.NewLogger(s.Activity)}

	mux.HandleFunc("GET /api/v1/deals", h.List)
	mux.HandleFunc("POST /api/v1/deals", h.Create)
	mux.HandleFunc("GET /api/v1/deals/stats", h.Stats)
	mux.HandleFunc("GET /api/v1/deals/{dealId}", h.Get)
	mux.HandleFunc("PATCH /api/v1/deals/{dealId}", h.Update)
	mux.HandleFunc("DELETE /api/v1/deals/{dealId}", h.Delete)
}
