package leads

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/revenue"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/timer"
)

// Handler handles lead HTTP requests.
type Handler struct {
	store    *store.Store
	activity *activity.Logger
}

// leadResponse is a lead with its timer and display fields.
type leadResponse struct {
	*domain.Lead
	RevenueDisplay string         `json:"revenue_display"`
	Timer          string         `json:"timer"`
	Severity       timer.Severity `json:"severity"`
}

func newLeadResponse(l *domain.Lead, now time.Time) leadResponse {
	t := timer.Compute(l, now)
	return leadResponse{
		Lead:           l,
		RevenueDisplay: revenue.FormatRevenue(l.Revenue),
		Timer:          t.Display,
		Severity:       t.Severity,
	}
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type statusRequest struct {
	Status domain.LeadStatus `json:"status"`
}

type callStatusRequest struct {
	CallStatus domain.CallStatus `json:"call_status"`
}

type scheduledCallRequest struct {
	ScheduledCall *time.Time `json:"scheduled_call"`
}

type companyCheckResponse struct {
	Company   string `json:"company"`
	Duplicate bool   `json:"duplicate"`
	Message   string `json:"message,omitempty"`
}

func duplicateMessage(company string) string {
	return fmt.Sprintf("A lead with company %q already exists in the system (created by another user or yourself). "+
		"Each company can only exist once globally. Please use a different company name or check if this is a duplicate.", company)
}

func constraintMessage(company string) string {
	return fmt.Sprintf("Database constraint: A lead with company %q already exists globally. "+
		"Please use a different company name.", company)
}

// List handles GET /api/v1/leads.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())
	q := r.URL.Query()

	f := domain.LeadFilter{
		Status:     domain.LeadStatus(q.Get("status")),
		CallStatus: domain.CallStatus(q.Get("call_status")),
		Industry:   q.Get("industry"),
		Query:      strings.TrimSpace(q.Get("q")),
		Sort:       domain.LeadSort(q.Get("sort")),
	}
	if f.Status != "" && !f.Status.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Unknown lead status %q", f.Status), corrID, nil))
		return
	}
	if f.CallStatus != "" && !f.CallStatus.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Unknown call status %q", f.CallStatus), corrID, nil))
		return
	}

	leads, err := h.store.Leads.List(r.Context(), sess.ActorID, f)
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}

	now := time.Now()
	results := make([]leadResponse, len(leads))
	for i, l := range leads {
		results[i] = newLeadResponse(l, now)
	}
	api.WriteJSON(w, http.StatusOK, api.NewCollection(results))
}

// Get handles GET /api/v1/leads/{leadId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	l, err := h.store.Leads.Get(r.Context(), sess.ActorID, r.PathValue("leadId"))
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}
	api.WriteJSON(w, http.StatusOK, newLeadResponse(l, time.Now()))
}

// CheckCompany handles GET /api/v1/leads/company-check. It is the advisory
// duplicate check a form runs before submitting.
func (h *Handler) CheckCompany(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireSession(w, r); !ok {
		return
	}
	company := strings.TrimSpace(r.URL.Query().Get("company"))
	if company == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"company is required", api.CorrelationID(r.Context()), nil))
		return
	}

	resp := companyCheckResponse{Company: company}
	_, err := h.store.Leads.FindByCompany(r.Context(), company, r.URL.Query().Get("exclude"))
	switch {
	case err == nil:
		resp.Duplicate = true
		resp.Message = duplicateMessage(company)
	case !errors.Is(err, store.ErrNotFound):
		api.WriteStoreError(w, r, err, "lead")
		return
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/v1/leads.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	in, ok := h.readInput(w, r)
	if !ok {
		return
	}
	if h.isDuplicate(w, r, in.Company, "") {
		return
	}

	l, err := h.store.Leads.Create(r.Context(), sess.ActorID, in)
	if err != nil {
		h.writeWriteError(w, r, err, in.Company)
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "create",
		ActionDetails: "Created lead",
		TargetType:    "lead",
		TargetID:      l.ID,
		TargetName:    l.Company,
		UserAgent:     r.UserAgent(),
	})
	api.WriteJSON(w, http.StatusCreated, newLeadResponse(l, time.Now()))
}

// Update handles PATCH /api/v1/leads/{leadId}. The body is the full form.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("leadId")

	in, ok := h.readInput(w, r)
	if !ok {
		return
	}
	if h.isDuplicate(w, r, in.Company, id) {
		return
	}

	l, err := h.store.Leads.Update(r.Context(), sess.ActorID, id, in)
	if err != nil {
		h.writeWriteError(w, r, err, in.Company)
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "edit",
		ActionDetails: "Updated lead",
		TargetType:    "lead",
		TargetID:      l.ID,
		TargetName:    l.Company,
		UserAgent:     r.UserAgent(),
	})
	api.WriteJSON(w, http.StatusOK, newLeadResponse(l, time.Now()))
}

// SetStatus handles PUT /api/v1/leads/{leadId}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var req statusRequest
	if err := api.DecodeJSON(r, &req); err != nil || !req.Status.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"status must be one of prospect, qualified, proposal, negotiation, closed-won, closed-lost", corrID, nil))
		return
	}

	l, err := h.store.Leads.UpdateStatus(r.Context(), sess.ActorID, r.PathValue("leadId"), req.Status)
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}
	h.logQuickEdit(r, l, "Changed status to "+string(req.Status))
	api.WriteJSON(w, http.StatusOK, newLeadResponse(l, time.Now()))
}

// SetCallStatus handles PUT /api/v1/leads/{leadId}/call-status.
func (h *Handler) SetCallStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var req callStatusRequest
	if err := api.DecodeJSON(r, &req); err != nil || !req.CallStatus.Valid() {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"call_status must be one of not_called, answered, no_response, voicemail, busy, wrong_number", corrID, nil))
		return
	}

	l, err := h.store.Leads.UpdateCallStatus(r.Context(), sess.ActorID, r.PathValue("leadId"), req.CallStatus)
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "call",
		ActionDetails: "Call status " + string(req.CallStatus),
		TargetType:    "lead",
		TargetID:      l.ID,
		TargetName:    l.Company,
		UserAgent:     r.UserAgent(),
	})
	api.WriteJSON(w, http.StatusOK, newLeadResponse(l, time.Now()))
}

// SetScheduledCall handles PUT /api/v1/leads/{leadId}/scheduled-call. A null
// time clears the callback.
func (h *Handler) SetScheduledCall(w http.ResponseWriter, r *http.Request) {
	var req scheduledCallRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Invalid input JSON", api.CorrelationID(r.Context()), nil))
		return
	}
	h.scheduleCall(w, r, req.ScheduledCall)
}

// ClearScheduledCall handles DELETE /api/v1/leads/{leadId}/scheduled-call.
func (h *Handler) ClearScheduledCall(w http.ResponseWriter, r *http.Request) {
	h.scheduleCall(w, r, nil)
}

func (h *Handler) scheduleCall(w http.ResponseWriter, r *http.Request, at *time.Time) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	l, err := h.store.Leads.SetScheduledCall(r.Context(), sess.ActorID, r.PathValue("leadId"), at)
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}

	details := "Cleared scheduled call"
	if at != nil {
		details = "Scheduled call for " + at.UTC().Format(time.RFC3339)
	}
	h.logQuickEdit(r, l, details)
	api.WriteJSON(w, http.StatusOK, newLeadResponse(l, time.Now()))
}

// Delete handles DELETE /api/v1/leads/{leadId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("leadId")

	if err := h.store.Leads.Delete(r.Context(), sess.ActorID, id); err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "delete",
		ActionDetails: "Deleted lead",
		TargetType:    "lead",
		TargetID:      id,
		UserAgent:     r.UserAgent(),
	})
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMany handles POST /api/v1/leads/delete.
func (h *Handler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	var req idsRequest
	if err := api.DecodeJSON(r, &req); err != nil || len(req.IDs) == 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"ids is required", api.CorrelationID(r.Context()), nil))
		return
	}

	n, err := h.store.Leads.DeleteMany(r.Context(), sess.ActorID, req.IDs)
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "delete",
		ActionDetails: fmt.Sprintf("Deleted %d leads", n),
		TargetType:    "lead",
		Metadata:      map[string]any{"ids": req.IDs},
		UserAgent:     r.UserAgent(),
	})
	api.WriteJSON(w, http.StatusOK, api.DeletedResponse{Deleted: n})
}

// DeleteAll handles DELETE /api/v1/leads, removing every lead of the actor.
func (h *Handler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	n, err := h.store.Leads.DeleteAll(r.Context(), sess.ActorID)
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}

	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "delete",
		ActionDetails: fmt.Sprintf("Deleted all leads (%d)", n),
		TargetType:    "lead",
		UserAgent:     r.UserAgent(),
	})
	api.WriteJSON(w, http.StatusOK, api.DeletedResponse{Deleted: n})
}

func (h *Handler) readInput(w http.ResponseWriter, r *http.Request) (domain.LeadInput, bool) {
	corrID := api.CorrelationID(r.Context())

	var in domain.LeadInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return in, false
	}
	in.Normalize()
	in.Company = strings.TrimSpace(in.Company)

	var details []api.ErrorDetail
	if strings.TrimSpace(in.Name) == "" {
		details = append(details, api.ErrorDetail{Message: "name is required", Code: "REQUIRED", In: "name"})
	}
	if in.Company == "" {
		details = append(details, api.ErrorDetail{Message: "company is required", Code: "REQUIRED", In: "company"})
	}
	if !in.Status.Valid() {
		details = append(details, api.ErrorDetail{Message: "unknown status " + string(in.Status), Code: "INVALID_OPTION", In: "status"})
	}
	if !in.CallStatus.Valid() {
		details = append(details, api.ErrorDetail{Message: "unknown call_status " + string(in.CallStatus), Code: "INVALID_OPTION", In: "call_status"})
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Lead validation failed", corrID, details))
		return in, false
	}
	return in, true
}

// isDuplicate runs the advisory pre-check and writes a 409 on a hit. A
// failed lookup is logged and the write proceeds to the unique index.
func (h *Handler) isDuplicate(w http.ResponseWriter, r *http.Request, company, excludeID string) bool {
	_, err := h.store.Leads.FindByCompany(r.Context(), company, excludeID)
	switch {
	case err == nil:
		api.WriteError(w, http.StatusConflict, api.NewConflictError(
			duplicateMessage(company), api.CorrelationID(r.Context())))
		return true
	case !errors.Is(err, store.ErrNotFound):
		slog.Warn("duplicate company check failed", "company", company, "error", err)
	}
	return false
}

func (h *Handler) writeWriteError(w http.ResponseWriter, r *http.Request, err error, company string) {
	if errors.Is(err, store.ErrDuplicateCompany) {
		api.WriteError(w, http.StatusConflict, api.NewConflictError(
			constraintMessage(company), api.CorrelationID(r.Context())))
		return
	}
	api.WriteStoreError(w, r, err, "lead")
}

func (h *Handler) logQuickEdit(r *http.Request, l *domain.Lead, details string) {
	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    "edit",
		ActionDetails: details,
		TargetType:    "lead",
		TargetID:      l.ID,
		TargetName:    l.Company,
		UserAgent:     r.UserAgent(),
	})
}
