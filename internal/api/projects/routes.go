package projects

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds all project endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s, activity: activity.NewLogger(s.Activity)}

	mux.HandleFunc("GET /api/v1/projects", h.List)
	mux.HandleFunc("POST /api/v1/projects", h.Create)
	mux.HandleFunc("DELETE /api/v1/projects", h.DeleteAll)
	mux.HandleFunc("POST /api/v1/projects/delete", h.DeleteMany)
	mux.HandleFunc("GET /api/v1/projects/{projectId}", h.Get)
	mux.HandleFunc("PATCH /api/v1/projects/{projectId}", h.Update)
	mux.HandleFunc("DELETE /api/v1/projects/{projectId}", h.Delete)
}
