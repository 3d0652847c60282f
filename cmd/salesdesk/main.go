package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envaire/salesdesk/internal/api"
	"github.com/envaire/salesdesk/internal/api/activity"
	"github.com/envaire/salesdesk/internal/api/admin"
	"github.com/envaire/salesdesk/internal/api/dashboard"
	"github.com/envaire/salesdesk/internal/api/deals"
	"github.com/envaire/salesdesk/internal/api/demos"
	"github.com/envaire/salesdesk/internal/api/exports"
	"github.com/envaire/salesdesk/internal/api/imports"
	"github.com/envaire/salesdesk/internal/api/leads"
	"github.com/envaire/salesdesk/internal/api/me"
	"github.com/envaire/salesdesk/internal/api/monitoring"
	"github.com/envaire/salesdesk/internal/api/notifications"
	"github.com/envaire/salesdesk/internal/api/projects"
	"github.com/envaire/salesdesk/internal/api/statusupdates"
	"github.com/envaire/salesdesk/internal/api/treasury"
	"github.com/envaire/salesdesk/internal/config"
	"github.com/envaire/salesdesk/internal/database"
	"github.com/envaire/salesdesk/internal/role"
	"github.com/envaire/salesdesk/internal/seed"
	"github.com/envaire/salesdesk/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	s := store.New(db)

	if cfg.SeedDemoData {
		if err := seed.Seed(ctx, s, time.Now()); err != nil {
			return fmt.Errorf("seed data: %w", err)
		}
	}

	mux := http.NewServeMux()

	// CRM API routes
	leads.RegisterRoutes(mux, s)
	projects.RegisterRoutes(mux, s)
	demos.RegisterRoutes(mux, s)
	statusupdates.RegisterRoutes(mux, s)
	deals.RegisterRoutes(mux, s)
	imports.RegisterRoutes(mux, s, cfg.ImportIndustry)
	exports.RegisterRoutes(mux, s)
	dashboard.RegisterRoutes(mux, s)
	notifications.RegisterRoutes(mux, s)
	activity.RegisterRoutes(mux, s)
	me.RegisterRoutes(mux, s)

	// Admin only
	treasury.RegisterRoutes(mux, s)
	monitoring.RegisterRoutes(mux, s)
	admin.RegisterRoutes(mux, s)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			api.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catch-all: return 404 in the API error format.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.APIKey, role.NewResolver(s.Roles, cfg.AdminEmails)),
		api.JSONContentType(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		// Cancels open event streams so Shutdown does not wait on them.
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	srv.BaseContext = func(net.Listener) context.Context { return ctx }

	slog.Info("starting salesdesk server", "addr", cfg.Addr, "driver", cfg.DBDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
