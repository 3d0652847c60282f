package imports

import (
	"net/http"

	"github.com/envaire/salesdesk/internal/activity"
	"github.com/envaire/salesdesk/internal/csvimport"
	"github.com/envaire/salesdesk/internal/store"
)

// RegisterRoutes adds all import endpoints to the given mux. Imported leads
// are stamped with industry.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, industry string) {
	h := &Handler{
		store:    s,
		importer: csvimport.NewImporter(s.Leads, industry),
		activity: activity.NewLogger(s.Activity),
	}

	mux.HandleFunc("POST /api/v1/imports", h.Start)
	mux.HandleFunc("GET /api/v1/imports", h.List)
	mux.HandleFunc("GET /api/v1/imports/template", h.Template)
	mux.HandleFunc("GET /api/v1/imports/{importId}", h.Get)
	mux.HandleFunc("GET /api/v1/imports/{importId}/errors", h.GetErrors)
}
