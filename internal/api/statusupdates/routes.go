package statusupdates

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds the status update endpoints of demos and projects to
// the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/v1/demos/{targetId}/updates", h.List(domain.TargetDemo))
	mux.HandleFunc("POST /api/v1/demos/{targetId}/updates", h.Create(domain.TargetDemo))
	mux.HandleFunc("GET /api/v1/projects/{targetId}/updates", h.List(domain.TargetProject))
	mux.HandleFunc("POST /api/v1/projects/{targetId}/updates", h.Create(domain.TargetProject))
	mux.HandleFunc("DELETE /api/v1/status-updates/{updateId}", h.Delete)
}
