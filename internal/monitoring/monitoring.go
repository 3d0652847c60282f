// Package monitoring collects system-wide counters for the admin monitoring
// room.
package monitoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/timer"
)

// Stats are the monitoring room counters.
type Stats struct {
	TotalLeads      int       `json:"totalLeads"`
	TotalProjects   int       `json:"totalProjects"`
	TotalDemos      int       `json:"totalDemos"`
	TotalDeals      int       `json:"totalDeals"`
	ActiveSalesmen  int       `json:"activeSalesmen"`
	OverdueLeads    int       `json:"overdueLeads"`
	TodayActivities int       `json:"todayActivities"`
	CollectedAt     time.Time `json:"collectedAt"`
}

// Collector gathers Stats from the stores.
type Collector struct {
	store *store.Store
	now   func() time.Time
}

// NewCollector creates a Collector using the wall clock.
func NewCollector(s *store.Store) *Collector {
	return &Collector{store: s, now: time.Now}
}

// WithClock returns a copy of c that reads time from now.
func (c *Collector) WithClock(now func() time.Time) *Collector {
	cp := *c
	cp.now = now
	return &cp
}

// Collect computes the counters. Active salesmen are the distinct salesman
// emails on active deals; overdue leads are evaluated across every actor;
// today's activities count from local midnight.
func (c *Collector) Collect(ctx context.Context) (Stats, error) {
	now := c.now()
	stats := Stats{CollectedAt: now.UTC()}
	var err error

	if stats.TotalLeads, err = c.store.Leads.Count(ctx); err != nil {
		return Stats{}, err
	}
	if stats.TotalProjects, err = c.store.Projects.Count(ctx); err != nil {
		return Stats{}, err
	}
	if stats.TotalDemos, err = c.store.Demos.Count(ctx); err != nil {
		return Stats{}, err
	}

	deals, err := c.store.Deals.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.TotalDeals = len(deals)
	stats.ActiveSalesmen = activeSalesmen(deals)

	active, err := c.store.Leads.ListActive(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	stats.OverdueLeads = timer.CountOverdue(active, now)

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.TodayActivities, err = c.store.Activity.CountSince(ctx, midnight); err != nil {
		return Stats{}, fmt.Errorf("today's activities: %w", err)
	}
	return stats, nil
}

func activeSalesmen(deals []*domain.Deal) int {
	seen := make(map[string]struct{})
	for _, d := range deals {
		if d.Status != domain.DealActive {
			continue
		}
		if email := strings.ToLower(strings.TrimSpace(d.SalesmanEmail)); email != "" {
			seen[email] = struct{}{}
		}
	}
	return len(seen)
}
