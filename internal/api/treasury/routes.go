package treasury

import (
	"net/http"
	"time"

	"github.com/envaire/salesdesk/internal/revenue"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds the admin revenue endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, now: time.Now, render: revenue.RenderChart}

	mux.HandleFunc("GET /api/v1/treasury", h.Get)
	mux.HandleFunc("GET /api/v1/treasury/chart.png", h.Chart)
}
