package admin

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/seed"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler serves administrator maintenance actions.
type Handler struct {
	store *store.Store
	now   func() time.Time
}

// dataTableNames lists the CRM data tables in foreign-key-safe deletion
// order. Role assignments survive a reset.
var dataTableNames = []string{
	"import_errors",
	"imports",
	"exports",
	"status_updates",
	"demos",
	"deals",
	"projects",
	"leads",
	"activity_logs",
}

// Reset deletes all CRM data and re-runs the demo seed.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.RequireAdmin(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	for _, table := range dataTableNames {
		if _, err := h.store.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
			h.fail(w, r, fmt.Errorf("clear table %s: %w", table, err))
			return
		}
	}

	if err := seed.Seed(ctx, h.store, h.now()); err != nil {
		h.fail(w, r, fmt.Errorf("re-seed: %w", err))
		return
	}

	slog.Info("database reset", "by", sess.Email)
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SeedData runs the demo seed without dropping existing data first. It is a
// no-op when leads already exist.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.RequireAdmin(w, r); !ok {
		return
	}
	if err := seed.Seed(r.Context(), h.store, h.now()); err != nil {
		h.fail(w, r, fmt.Errorf("seed: %w", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("admin action failed", "path", r.URL.Path, "error", err)
	api.WriteError(w, http.StatusInternalServerError,
		api.NewInternalError(err.Error(), api.CorrelationID(r.Context())))
}
