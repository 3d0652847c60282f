package exports

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/export"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler handles export HTTP requests.
type Handler struct {
	store    *store.Store
	activity *activity.Logger
}

// exportRequest is the JSON body for starting an export. The filters match
// the lead list query parameters.
type exportRequest struct {
	Name       string            `json:"name"`
	Format     string            `json:"format"`
	Status     domain.LeadStatus `json:"status"`
	CallStatus domain.CallStatus `json:"call_status"`
	Industry   string            `json:"industry"`
	Query      string            `json:"q"`
}

// statusResponse represents the export status API response.
type statusResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Format    string        `json:"format"`
	Status    string        `json:"status"`
	Result    *exportResult `json:"result,omitempty"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

type exportResult struct {
	RecordCount int    `json:"recordCount"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

func newStatusResponse(exp *store.Export) statusResponse {
	resp := statusResponse{
		ID:        exp.ID,
		Name:      exp.Name,
		Format:    exp.Format,
		Status:    exp.State,
		CreatedAt: exp.CreatedAt,
		UpdatedAt: exp.UpdatedAt,
	}
	if exp.State == store.ExportComplete {
		resp.Result = &exportResult{
			RecordCount: exp.RecordCount,
			DownloadURL: "/api/v1/exports/" + exp.ID + "/download",
		}
	}
	return resp
}

// Start handles POST /api/v1/exports. The file is generated before the
// response is written.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var req exportRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), corrID, nil))
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Unknown lead status %q", req.Status), corrID, nil))
		return
	}
	if req.CallStatus != "" && !req.CallStatus.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Unknown call status %q", req.CallStatus), corrID, nil))
		return
	}

	exp, err := h.store.Exports.Create(r.Context(), sess.ActorID, req.Name, string(format))
	if err != nil {
		api.WriteStoreError(w, r, err, "export")
		return
	}

	leads, err := h.store.Leads.List(r.Context(), sess.ActorID, domain.LeadFilter{
		Status:     req.Status,
		CallStatus: req.CallStatus,
		Industry:   req.Industry,
		Query:      strings.TrimSpace(req.Query),
		Sort:       domain.LeadSortCompany,
	})
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}

	data, err := export.Leads(format, leads)
	if err != nil {
		api.WriteStoreError(w, r, fmt.Errorf("render export: %w", err), "export")
		return
	}
	if err := h.store.Exports.Complete(r.Context(), exp.ID, data, len(leads)); err != nil {
		api.WriteStoreError(w, r, err, "export")
		return
	}

	exp, err = h.store.Exports.Get(r.Context(), sess.ActorID, exp.ID)
	if err != nil {
		api.WriteStoreError(w, r, err, "export")
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "click",
		ActionDetails: fmt.Sprintf("Exported %d leads as %s", len(leads), format),
		TargetType:    "button",
		TargetID:      exp.ID,
		TargetName:    exp.Name,
		UserAgent:     r.UserAgent(),
	})
	api.WriteJSON(w, http.StatusAccepted, newStatusResponse(exp))
}

// GetStatus handles GET /api/v1/exports/{exportId}.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	exp, err := h.store.Exports.Get(r.Context(), sess.ActorID, r.PathValue("exportId"))
	if err != nil {
		api.WriteStoreError(w, r, err, "export")
		return
	}
	api.WriteJSON(w, http.StatusOK, newStatusResponse(exp))
}

// Download handles GET /api/v1/exports/{exportId}/download.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	exp, err := h.store.Exports.Get(r.Context(), sess.ActorID, r.PathValue("exportId"))
	if err != nil {
		api.WriteStoreError(w, r, err, "export")
		return
	}
	if exp.State != store.ExportComplete {
		api.WriteError(w, http.StatusConflict, api.NewConflictError(
			"Export is not complete", api.CorrelationID(r.Context())))
		return
	}

	format := export.Format(exp.Format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="leads-`+exp.ID+`.`+exp.Format+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(exp.ResultData)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exp.ResultData)
}
