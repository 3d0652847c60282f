// Package seed inserts demo data for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/envaire/salesdesk/internal/store"
)

// Demo actor used as the owner of seeded records.
const (
	DemoActorID    = "demo-salesman"
	DemoActorEmail = "sales@example.com"
)

// Seed inserts demo leads, pipeline items and deals when the database has no
// leads yet. Existing data is left untouched. Call order matters: leads
// first, since demos reference them.
func Seed(ctx context.Context, s *store.Store, now time.Time) error {
	n, err := s.Leads.Count(ctx)
	if err != nil {
		return fmt.Errorf("count leads: %w", err)
	}
	if n > 0 {
		slog.Debug("database already has leads, skipping seed", "leads", n)
		return nil
	}

	leadIDs, err := Leads(ctx, s.Leads, now)
	if err != nil {
		return fmt.Errorf("seed leads: %w", err)
	}
	if err := Pipeline(ctx, s, leadIDs, now); err != nil {
		return fmt.Errorf("seed pipeline: %w", err)
	}
	if err := Deals(ctx, s.Deals, now); err != nil {
		return fmt.Errorf("seed deals: %w", err)
	}

	slog.Info("seeded demo data", "leads", len(leadIDs))
	return nil
}
