package monitoring

import (
	"net/http"
	"time"

	"github.com/envaire/salesdesk/internal/monitoring"
	"github.com/envaire/salesdesk/internal/store"
)

// RefreshInterval is how often the monitoring stream recollects counters.
const RefreshInterval = 5 * time.Second

// RegisterRoutes adds the admin monitoring endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{collector: monitoring.NewCollector(s), interval: RefreshInterval}

	mux.HandleFunc("GET /api/v1/monitoring", h.Get)
	mux.HandleFunc("GET /api/v1/monitoring/stream", h.Stream)
}
