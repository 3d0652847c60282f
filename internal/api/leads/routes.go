package leads

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds all lead endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, activity: activity.NewLogger(s.Activity)}

	mux.HandleFunc("GET /api/v1/leads", h.List)
	mux.HandleFunc("POST /api/v1/leads", h.Create)
	mux.HandleFunc("DELETE /api/v1/leads", h.DeleteAll)
	mux.HandleFunc("POST /api/v1/leads/delete", h.DeleteMany)
	mux.HandleFunc("GET /api/v1/leads/company-check", h.CheckCompany)
	mux.HandleFunc("GET /api/v1/leads/{leadId}", h.Get)
	mux.HandleFunc("PATCH /api/v1/leads/{leadId}", h.Update)
	mux.HandleFunc("DELETE /api/v1/leads/{leadId}", h.Delete)
	mux.HandleFunc("PUT /api/v1/leads/{leadId}/status", h.SetStatus)
	mux.HandleFunc("PUT /api/v1/leads/{leadId}/call-status", h.SetCallStatus)
	mux.HandleFunc("PUT /api/v1/leads/{leadId}/scheduled-call", h.SetScheduledCall)
	mux.HandleFunc("DELETE /api/v1/leads/{leadId}/scheduled-call", h.ClearScheduledCall)
}
