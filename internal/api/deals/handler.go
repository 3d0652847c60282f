package deals

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/revenue"
	"github.com/envaire/salesdesk/internal/session"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler handles deal HTTP requests. Deals are scoped to the actor.
type Handler struct {
	store    *store.Store
	activity *activity.Logger
}

// statsResponse are the totals above the deal list, with display strings.
type statsResponse struct {
	revenue.Totals
	MonthlyRecurringDisplay string `json:"monthlyRecurringDisplay"`
	OneTimePaymentsDisplay  string `json:"oneTimePaymentsDisplay"`
	InstallationFeesDisplay string `json:"installationFeesDisplay"`
}

func dealFilter(r *http.Request) (domain.DealFilter, error) {
	q := r.URL.Query()
	f := domain.DealFilter{
		Status:      domain.DealStatus(q.Get("status")),
		PaymentType: domain.PaymentType(q.Get("payment_type")),
		Query:       strings.TrimSpace(q.Get("q")),
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, fmt.Errorf("unknown deal status %q", f.Status)
	}
	if f.PaymentType != "" && !f.PaymentType.Valid() {
		return f, fmt.Errorf("unknown payment type %q", f.PaymentType)
	}
	return f, nil
}

// List handles GET /api/v1/deals.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	f, err := dealFilter(r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), api.CorrelationID(r.Context()), nil))
		return
	}

	deals, err := h.store.Deals.List(r.Context(), sess.ActorID, f)
	if err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return
	}
	api.WriteJSON(w, http.StatusOK, api.NewCollection(deals))
}

// Stats handles GET /api/v1/deals/stats. One-time payments include
// installation fees here.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	deals, err := h.store.Deals.List(r.Context(), sess.ActorID, domain.DealFilter{})
	if err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return
	}

	t := revenue.Total(deals, true)
	api.WriteJSON(w, http.StatusOK, statsResponse{
		Totals:                  t,
		MonthlyRecurringDisplay: revenue.FormatEUR(t.MonthlyRecurring),
		OneTimePaymentsDisplay:  revenue.FormatEUR(t.OneTimePayments),
		InstallationFeesDisplay: revenue.FormatEUR(t.InstallationFees),
	})
}

// Get handles GET /api/v1/deals/{dealId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}

	d, err := h.store.Deals.Get(r.Context(), sess.ActorID, r.PathValue("dealId"))
	if err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return
	}
	api.WriteJSON(w, http.StatusOK, d)
}

// Create handles POST /api/v1/deals.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	in, ok := readInput(w, r, sess)
	if !ok {
		return
	}

	d, err := h.store.Deals.Create(r.Context(), sess.ActorID, in)
	if err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return
	}

	h.log(r, "create", "Created deal worth "+revenue.FormatEUR(d.DealValue), d.ID, d.Title)
	api.WriteJSON(w, http.StatusCreated, d)
}

// Update handles PATCH /api/v1/deals/{dealId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	in, ok := readInput(w, r, sess)
	if !ok {
		return
	}

	d, err := h.store.Deals.Update(r.Context(), sess.ActorID, r.PathValue("dealId"), in)
	if err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return
	}

	h.log(r, "edit", "Updated deal", d.ID, d.Title)
	api.WriteJSON(w, http.StatusOK, d)
}

// Delete handles DELETE /api/v1/deals/{dealId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("dealId")

	if err := h.store.Deals.Delete(r.Context(), sess.ActorID, id); err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return
	}

	h.log(r, "delete", "Deleted deal", id, "")
	w.WriteHeader(http.StatusNoContent)
}

// readInput decodes and validates a deal form. Blank salesman fields default
// to the actor: the local part of their email and the email itself.
func readInput(w http.ResponseWriter, r *http.Request, sess session.Session) (domain.DealInput, bool) {
	corrID := api.CorrelationID(r.Context())

	var in domain.DealInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return in, false
	}
	in.Normalize()
	if strings.TrimSpace(in.SalesmanEmail) == "" {
		in.SalesmanEmail = sess.Email
	}
	if strings.TrimSpace(in.SalesmanName) == "" {
		in.SalesmanName, _, _ = strings.Cut(sess.Email, "@")
	}

	var details []api.ErrorDetail
	add := func(field, code, msg string) {
		details = append(details, api.ErrorDetail{Message: msg, Code: code, In: field})
	}
	if strings.TrimSpace(in.Title) == "" {
		add("title", "REQUIRED", "title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		add("company", "REQUIRED", "company is required")
	}
	if in.DealValue < 0 {
		add("deal_value", "INVALID_VALUE", "deal_value must not be negative")
	}
	if in.InstallationFee < 0 {
		add("installation_fee", "INVALID_VALUE", "installation_fee must not be negative")
	}
	if in.ClosedDate.IsZero() {
		add("closed_date", "REQUIRED", "closed_date is required")
	}
	if !in.PaymentType.Valid() {
		add("payment_type", "INVALID_OPTION", "unknown payment_type "+string(in.PaymentType))
	}
	if in.PaymentType == domain.PaymentMonthly && in.MonthlyAmount <= 0 {
		add("monthly_amount", "REQUIRED", "monthly_amount is required for monthly deals")
	}
	if !in.Status.Valid() {
		add("status", "INVALID_OPTION", "unknown status "+string(in.Status))
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Deal validation failed", corrID, details))
		return in, false
	}
	return in, true
}

func (h *Handler) log(r *http.Request, action, details, id, name string) {
	h.activity.Log(r.Context(), activity.Entry{
		ActionType:    action,
		ActionDetails: details,
		TargetType:    "deal",
		TargetID:      id,
		TargetName:    name,
		UserAgent:     r.UserAgent(),
	})
}
