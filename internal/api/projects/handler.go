package projects

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler handles project HTTP requests. Projects are shared by all actors.
type Handler struct {
	store    *store.Store
	activity *activity.Logger
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

// List handles GET /api/v1/projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}

	projects, err := h.store.Projects.List(r.Context())
	if err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.NewCollection(projects))
}

// Get handles GET /api/v1/projects/{projectId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}

	p, err := h.store.Projects.Get(r.Context(), r.PathValue("projectId"))
	if err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

// Create handles POST /api/v1/projects.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	in, ok := readInput(w, r)
	if !ok {
		return
	}

	p, err := h.store.Projects.Create(r.Context(), sess.ActorID, in)
	if err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}

	h.log(r, "create", "Created project", p.ID, p.Title)
	api.WriteJSON(w, http.StatusCreated, p)
}

// Update handles PATCH /api/v1/projects/{projectId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}
	in, ok := readInput(w, r)
	if !ok {
		return
	}

	p, err := h.store.Projects.Update(r.Context(), r.PathValue("projectId"), in)
	if err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}

	h.log(r, "edit", "Updated project", p.ID, p.Title)
	api.WriteJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/projects/{projectId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}
	id := r.PathValue("projectId")

	if err := h.store.Projects.Delete(r.Context(), id); err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}

	h.log(r, "delete", "Deleted project", id, "")
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMany handles POST /api/v1/projects/delete.
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

	n, err := h.store.Projects.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}

	h.log(r, "delete", fmt.Sprintf("Deleted %d projects", n), "", "")
	api.WriteJSON(w, http.StatusOK, api.DeletedResponse{Deleted: n})
}

// DeleteAll handles DELETE /api/v1/projects.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}

	n, err := h.store.Projects.DeleteAll(r.Context())
	if err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}

	h.log(r, "delete", fmt.Sprintf("Deleted all projects (%d)", n), "", "")
	api.WriteJSON(w, http.StatusOK, api.DeletedResponse{Deleted: n})
}

func readInput(w http.ResponseWriter, r *http.Request) (domain.ProjectInput, bool) {
	corrID := api.CorrelationID(r.Context())

	var in domain.ProjectInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return in, false
	}

	var details []api.ErrorDetail
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"company", in.Company},
		{"description", in.Description},
	} {
		if strings.TrimSpace(f.value) == "" {
			details = append(details, api.ErrorDetail{Message: f.name + " is required", Code: "REQUIRED", In: f.name})
		}
	}
	if in.ExpectedCloseDate.IsZero() {
		details = append(details, api.ErrorDetail{Message: "expectedCloseDate is required", Code: "REQUIRED", In: "expectedCloseDate"})
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Project validation failed", corrID, details))
		return in, false
	}
	return in, true
}

func (h *Handler) log(r *http.Request, action, details, id, name string) {
	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    action,
		ActionDetails: details,
		TargetType:    "project",
		TargetID:      id,
		TargetName:    name,
		UserAgent:     r.UserAgent(),
	})
}
