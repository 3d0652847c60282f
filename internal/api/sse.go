package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/envaire/salesdesk/internal/poll"
)

// Stream serves p's snapshots as Server-Sent Events named event until the
// client disconnects. The poller runs on the request goroutine and stops with
// the request context.
func Stream[T any](w http.ResponseWriter, r *http.Request, event string, p *poll.Poller[T]) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		slog.Error("event stream unsupported", "path", r.URL.Path, "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	p.Run(ctx, func(v T) {
		if err := writeEvent(w, event, v); err != nil {
			slog.Debug("event stream closed", "path", r.URL.Path, "error", err)
			cancel()
			return
		}
		if err := rc.Flush(); err != nil {
			cancel()
		}
	})
}

func writeEvent(w http.ResponseWriter, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
