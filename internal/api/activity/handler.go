package activity

import (
	"fmt"
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
)

// Handler records UI actions reported by the client.
type Handler struct {
	logger *activity.Logger
}

// Log handles POST /api/v1/activity.
func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var e activity.Entry
	if err := api.DecodeJSON(r, &e); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid request body", corrID, nil))
		return
	}

	var details []api.ErrorDetail
	if !domain.ValidActivityAction(e.ActionType) {
		details = append(details, api.ErrorDetail{
			Message: fmt.Sprintf("unknown action_type %q", e.ActionType),
			Code:    "INVALID_OPTION",
			In:      "action_type",
		})
	}
	if !domain.ValidActivityTarget(e.TargetType) {
		details = append(details, api.ErrorDetail{
			Message: fmt.Sprintf("unknown target_type %q", e.TargetType),
			Code:    "INVALID_OPTION",
			In:      "target_type",
		})
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid activity", corrID, details))
		return
	}

	e.UserAgent = r.UserAgent()
	h.logger.Log(r.Context(), e)
	w.WriteHeader(http.StatusNoContent)
}
