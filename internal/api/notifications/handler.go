package notifications

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/poll"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/timer"
)

// Handler serves the overdue lead notifications of the signed-in actor.
type Handler struct {
	store    *store.Store
	interval time.Duration
	now      func() time.Time
}

func (h *Handler) snapshot(actorID string) poll.FetchFunc[timer.Snapshot] {
	return func(ctx context.Context) (timer.Snapshot, error) {
		leads, err := h.store.Leads.ListActive(ctx, actorID)
		if err != nil {
			return timer.Snapshot{}, fmt.Errorf("list active leads: %w", err)
		}
		return timer.Evaluate(leads, h.now()), nil
	}
}

// Get handles GET /api/v1/notifications.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	snap, err := h.snapshot(sess.ActorID)(r.Context())
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}
	api.WriteJSON(w, http.StatusOK, snap)
}

// Stream handles GET /api/v1/notifications/stream. A snapshot is sent on
// connect and after every refresh until the client goes away.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	p := poll.New("notifications:"+sess.ActorID, h.interval, h.snapshot(sess.ActorID))
	api.Stream(w, r, "notifications", p)
}
