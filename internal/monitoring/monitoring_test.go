package monitoring_test

import (
	"context"
	"testing"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/monitoring"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/testhelpers"
)

func TestCollect(t *testing.T) {
	s := store.New(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	// Leads are created "now", so evaluate five days later to make the
	// prospect overdue.
	later := time.Now().Add(5 * 24 * time.Hour)

	if _, err := s.Leads.Create(ctx, "u1", domain.LeadInput{Company: "Overdue", Status: domain.LeadProspect}); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if _, err := s.Leads.Create(ctx, "u2", domain.LeadInput{Company: "Working", Status: domain.LeadQualified}); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if _, err := s.Projects.Create(ctx, "u1", domain.ProjectInput{Title: "P"}); err != nil {
		t.Fatalf("create project: %v", err)
	}
	for _, d := range []domain.DealInput{
		{Title: "a", SalesmanEmail: "ann@example.com"},
		{Title: "b", SalesmanEmail: "ANN@example.com "},
		{Title: "c", SalesmanEmail: "bob@example.com", Status: domain.DealCancelled},
	} {
		if _, err := s.Deals.Create(ctx, "u1", d); err != nil {
			t.Fatalf("create deal: %v", err)
		}
	}
	if err := s.Activity.Insert(ctx, &domain.ActivityLog{UserID: "u1", ActionType: "view", TargetType: "page", Timestamp: later}); err != nil {
		t.Fatalf("insert activity: %v", err)
	}

	stats, err := monitoring.NewCollector(s).WithClock(func() time.Time { return later }).Collect(ctx)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if stats.TotalLeads != 2 || stats.TotalProjects != 1 || stats.TotalDemos != 0 || stats.TotalDeals != 3 {
		t.Errorf("unexpected totals %+v", stats)
	}
	if stats.ActiveSalesmen != 1 {
		t.Errorf("ActiveSalesmen = %d, want 1", stats.ActiveSalesmen)
	}
	if stats.OverdueLeads != 1 {
		t.Errorf("OverdueLeads = %d, want 1", stats.OverdueLeads)
	}
	if stats.TodayActivities != 1 {
		t.Errorf("TodayActivities = %d, want 1", stats.TodayActivities)
	}
}
