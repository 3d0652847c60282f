package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/testhelpers"
)

var _ store.DemoStore = (*store.SQLDemoStore)(nil)

func TestDemoCreateDefaults(t *testing.T) {
	s := store.NewSQLDemoStore(testhelpers.NewMigratedDB(t))

	d, err := s.Create(context.Background(), "user-1", domain.DemoInput{Title: "Intro", LeadID: "lead-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.Priority != domain.PriorityMedium {
		t.Errorf("expected medium priority, got %s", d.Priority)
	}
	if d.Status != domain.DemoPending {
		t.Errorf("expected pending, got %s", d.Status)
	}

	got, err := s.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LeadID != "lead-1" || got.ProjectID != "" {
		t.Errorf("unexpected links: lead=%q project=%q", got.LeadID, got.ProjectID)
	}
}

func TestDemoListFilterAndStatus(t *testing.T) {
	s := store.NewSQLDemoStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	hi, err := s.Create(ctx, "user-1", domain.DemoInput{Title: "Big", Priority: domain.PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, "user-2", domain.DemoInput{Title: "Small", Priority: domain.PriorityLow}); err != nil {
		t.Fatalf("create: %v", err)
	}

	high, err := s.List(ctx, domain.DemoFilter{Priority: domain.PriorityHigh})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(high) != 1 || high[0].ID != hi.ID {
		t.Errorf("expected only the high priority demo, got %d", len(high))
	}

	done, err := s.UpdateStatus(ctx, hi.ID, domain.DemoCompleted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if done.Status != domain.DemoCompleted {
		t.Errorf("expected completed, got %s", done.Status)
	}

	completed, err := s.List(ctx, domain.DemoFilter{Status: domain.DemoCompleted})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("expected 1 completed demo, got %d", len(completed))
	}

	if _, err := s.UpdateStatus(ctx, "missing", domain.DemoCompleted); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
