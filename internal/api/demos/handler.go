package demos

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler handles demo HTTP requests. Demos are shared by all actors.
type Handler struct {
	store    *store.Store
	activity *activity.Logger
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type statusRequest struct {
	Status domain.DemoStatus `json:"status"`
}

// List handles GET /api/v1/demos.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())
	q := r.URL.Query()

	f := domain.DemoFilter{
		Status:   domain.DemoStatus(q.Get("status")),
		Priority: domain.DemoPriority(q.Get("priority")),
	}
	if f.Status != "" && !f.Status.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Unknown demo status %q", f.Status), corrID, nil))
		return
	}
	if f.Priority != "" && !f.Priority.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Unknown priority %q", f.Priority), corrID, nil))
		return
	}

	demos, err := h.store.Demos.List(r.Context(), f)
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.NewCollection(demos))
}

// Get handles GET /api/v1/demos/{demoId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}

	d, err := h.store.Demos.Get(r.Context(), r.PathValue("demoId"))
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}
	api.WriteJSON(w, http.StatusOK, d)
}

// Create handles POST /api/v1/demos.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	in, ok := readInput(w, r)
	if !ok {
		return
	}

	d, err := h.store.Demos.Create(r.Context(), sess.ActorID, in)
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}

	h.log(r, "create", "Created demo", d.ID, d.Title)
	api.WriteJSON(w, http.StatusCreated, d)
}

// Update handles PATCH /api/v1/demos/{demoId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}
	in, ok := readInput(w, r)
	if !ok {
		return
	}

	d, err := h.store.Demos.Update(r.Context(), r.PathValue("demoId"), in)
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}

	h.log(r, "edit", "Updated demo", d.ID, d.Title)
	api.WriteJSON(w, http.StatusOK, d)
}

// SetStatus handles PUT /api/v1/demos/{demoId}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}

	var req statusRequest
	if err := api.DecodeJSON(r, &req); err != nil || !req.Status.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"status must be one of pending, in-progress, completed", api.CorrelationID(r.Context()), nil))
		return
	}

	d, err := h.store.Demos.UpdateStatus(r.Context(), r.PathValue("demoId"), req.Status)
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}

	h.log(r, "edit", "Changed status to "+string(req.Status), d.ID, d.Title)
	api.WriteJSON(w, http.StatusOK, d)
}

// Delete handles DELETE /api/v1/demos/{demoId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}
	id := r.PathValue("demoId")

	if err := h.store.Demos.Delete(r.Context(), id); err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}

	h.log(r, "delete", "Deleted demo", id, "")
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMany handles POST /api/v1/demos/delete.
func (h *Handler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}

	var req idsRequest
	if err := api.DecodeJSON(r, &req); err != nil || len(req.IDs) == 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"ids is required", api.CorrelationID(r.Context()), nil))
		return
	}

	n, err := h.store.Demos.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}

	h.log(r, "delete", fmt.Sprintf("Deleted %d demos", n), "", "")
	api.WriteJSON(w, http.StatusOK, api.DeletedResponse{Deleted: n})
}

// DeleteAll handles DELETE /api/v1/demos.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}

	n, err := h.store.Demos.DeleteAll(r.Context())
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}

	h.log(r, "delete", fmt.Sprintf("Deleted all demos (%d)", n), "", "")
	api.WriteJSON(w, http.StatusOK, api.DeletedResponse{Deleted: n})
}

func readInput(w http.ResponseWriter, r *http.Request) (domain.DemoInput, bool) {
	corrID := api.CorrelationID(r.Context())

	var in domain.DemoInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return in, false
	}
	in.Normalize()

	var details []api.ErrorDetail
	if strings.TrimSpace(in.Title) == "" {
		details = append(details, api.ErrorDetail{Message: "title is required", Code: "REQUIRED", In: "title"})
	}
	if in.DueDate.IsZero() {
		details = append(details, api.ErrorDetail{Message: "dueDate is required", Code: "REQUIRED", In: "dueDate"})
	}
	if !in.Priority.Valid() {
		details = append(details, api.ErrorDetail{Message: "unknown priority " + string(in.Priority), Code: "INVALID_OPTION", In: "priority"})
	}
	if !in.Status.Valid() {
		details = append(details, api.ErrorDetail{Message: "unknown status " + string(in.Status), Code: "INVALID_OPTION", In: "status"})
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Demo validation failed", corrID, details))
		return in, false
	}
	return in, true
}

func (h *Handler) log(r *http.Request, action, details, id, name string) {
	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    action,
		ActionDetails: details,
		TargetType:    "demo",
		TargetID:      id,
		TargetName:    name,
		UserAgent:     r.UserAgent(),
	})
}
