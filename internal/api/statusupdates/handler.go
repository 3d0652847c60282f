package statusupdates

import (
	"context"
	"net/http"
	"strings"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler handles status update HTTP requests.
type Handler struct {
	store *store.Store
}

type createRequest struct {
	Comment string `json:"comment"`
}

// List returns the handler for GET .../{targetId}/updates.
func (h *Handler) List(target domain.TargetType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := api.RequireSession(w, r); !ok {
			return
		}
		targetID := r.PathValue("targetId")

		if err := h.targetExists(r.Context(), target, targetID); err != nil {
			api.WriteStoreError(w, r, err, string(target))
			return
		}

		updates, err := h.store.StatusUpdates.List(r.Context(), target, targetID)
		if err != nil {
			api.WriteStoreError(w, r, err, "status update")
			return
		}
		api.WriteJSON(w, http.StatusOK, api.NewCollection(updates))
	}
}

// Create returns the handler for POST .../{targetId}/updates.
func (h *Handler) Create(target domain.TargetType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := api.RequireSession(w, r)
		if !ok {
			return
		}
		targetID := r.PathValue("targetId")

		var req createRequest
		if err := api.DecodeJSON(r, &req); err != nil || strings.TrimSpace(req.Comment) == "" {
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
				"comment is required", api.CorrelationID(r.Context()), nil))
			return
		}

		if err := h.targetExists(r.Context(), target, targetID); err != nil {
			api.WriteStoreError(w, r, err, string(target))
			return
		}

		u, err := h.store.StatusUpdates.Create(r.Context(), sess.ActorID, target, targetID, req.Comment)
		if err != nil {
			api.WriteStoreError(w, r, err, "status update")
			return
		}
		api.WriteJSON(w, http.StatusCreated, u)
	}
}

// Delete handles DELETE /api/v1/status-updates/{updateId}. Only the author
// may delete an update.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	if err := h.store.StatusUpdates.Delete(r.Context(), sess.ActorID, r.PathValue("updateId")); err != nil {
		api.WriteStoreError(w, r, err, "status update")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) targetExists(ctx context.Context, target domain.TargetType, id string) error {
	var err error
	switch target {
	case domain.TargetDemo:
		_, err = h.store.Demos.Get(ctx, id)
	case domain.TargetProject:
		_, err = h.store.Projects.Get(ctx, id)
	}
	return err
}
