package demos

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds all demo endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, activity: activity.NewLogger(s.Activity)}

	mux.HandleFunc("GET /api/v1/demos", h.List)
	mux.HandleFunc("POST /api/v1/demos", h.Create)
	mux.HandleFunc("DELETE /api/v1/demos", h.DeleteAll)
	mux.HandleFunc("POST /api/v1/demos/delete", h.DeleteMany)
	mux.HandleFunc("GET /api/v1/demos/{demoId}", h.Get)
	mux.HandleFunc("PATCH /api/v1/demos/{demoId}", h.Update)
	mux.HandleFunc("DELETE /api/v1/demos/{demoId}", h.Delete)
	mux.HandleFunc("PUT /api/v1/demos/{demoId}/status", h.SetStatus)
}
