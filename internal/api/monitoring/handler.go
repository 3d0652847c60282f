package monitoring

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/monitoring"
	"github.com/envaire/salesdesk/internal/poll"
)

// Handler serves the monitoring room counters to administrators.
type Handler struct {
	collector *monitoring.Collector
	interval  time.Duration
}

// Get handles GET /api/v1/monitoring.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireAdmin(w, r); !ok {
		return
	}

	stats, err := h.collector.Collect(r.Context())
	if err != nil {
		slog.Error("failed to collect monitoring stats", "error", err)
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError("Internal Server Error", api.CorrelationID(r.Context())))
		return
	}
	api.WriteJSON(w, http.StatusOK, stats)
}

// Stream handles GET /api/v1/monitoring/stream.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireAdmin(w, r); !ok {
		return
	}

	p := poll.New("monitoring", h.interval, h.collector.Collect)
	api.Stream(w, r, "monitoring", p)
}
