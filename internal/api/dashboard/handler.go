package dashboard

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/revenue"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler serves the landing dashboard.
type Handler struct {
	store *store.Store
}

// Get handles GET /api/v1/dashboard. Leads and deals are the actor's own;
// projects and demos are shared.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireSession(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	leads, err := h.store.Leads.List(ctx, sess.ActorID, domain.LeadFilter{})
	if err != nil {
		api.WriteStoreError(w, r, err, "lead")
		return
	}
	projects, err := h.store.Projects.List(ctx)
	if err != nil {
		api.WriteStoreError(w, r, err, "project")
		return
	}
	demos, err := h.store.Demos.List(ctx, domain.DemoFilter{})
	if err != nil {
		api.WriteStoreError(w, r, err, "demo")
		return
	}
	deals, err := h.store.Deals.List(ctx, sess.ActorID, domain.DealFilter{})
	if err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return
	}

	api.WriteJSON(w, http.StatusOK, revenue.BuildDashboard(revenue.DashboardInput{
		Leads:    leads,
		Projects: projects,
		Demos:    demos,
		Deals:    deals,
	}))
}
