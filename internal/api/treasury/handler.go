package treasury

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/revenue"
	"github.com/envaire/salesdesk/internal/store"
)

// Handler serves the treasury view. Every route is admin only.
type Handler struct {
	store  *store.Store
	now    func() time.Time
	render func(revenue.Treasury) ([]byte, error)
}

// treasuryResponse is the treasury with the company totals pre-formatted.
type treasuryResponse struct {
	revenue.Treasury
	Display map[string]string `json:"display"`
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (revenue.Treasury, bool) {
	if _, ok := api.RequireAdmin(w, r); !ok {
		return revenue.Treasury{}, false
	}

	window, err := revenue.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), api.CorrelationID(r.Context()), nil))
		return revenue.Treasury{}, false
	}

	deals, err := h.store.Deals.ListAll(r.Context())
	if err != nil {
		api.WriteStoreError(w, r, err, "deal")
		return revenue.Treasury{}, false
	}
	return revenue.Summarize(deals, window, h.now()), true
}

// Get handles GET /api/v1/treasury.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}

	c := t.Company
	api.WriteJSON(w, http.StatusOK, treasuryResponse{
		Treasury: t,
		Display: map[string]string{
			"totalValue":       revenue.FormatEUR(c.TotalValue),
			"monthlyRecurring": revenue.FormatEUR(c.MonthlyRecurring),
			"oneTimePayments":  revenue.FormatEUR(c.OneTimePayments),
			"installationFees": revenue.FormatEUR(c.InstallationFees),
			"thisMonthRevenue": revenue.FormatEUR(c.ThisMonthRevenue),
		},
	})
}

// Chart handles GET /api/v1/treasury/chart.png.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}

	png, err := h.render(t)
	if err != nil {
		slog.Error("failed to render treasury chart", "window", t.Window, "error", err)
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError("Failed to render chart", api.CorrelationID(r.Context())))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
