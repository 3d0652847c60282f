package notifications

import (
	"net/http"
	"time"

	"github.com/envaire/salesdesk/internal/store"
)

// RefreshInterval is how often the notification stream refetches leads.
const RefreshInterval = 60 * time.Second

// RegisterRoutes adds the lead timer notification endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, interval: RefreshInterval, now: time.Now}

	mux.HandleFunc("GET /api/v1/notifications", h.Get)
	mux.HandleFunc("GET /api/v1/notifications/stream", h.Stream)
}
