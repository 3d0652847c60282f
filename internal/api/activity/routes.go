package activity

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds the client activity logging endpoint to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{logger: activity.NewLogger(s.Activity)}

	mux.HandleFunc("POST /api/v1/activity", h.Log)
}
