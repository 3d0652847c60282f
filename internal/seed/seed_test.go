package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/envaire/salesdesk/internal/seed"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/testhelpers"
)

func TestSeed(t *testing.T) {
	s := store.New(testhelpers.NewMigratedDB(t))
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	if err := seed.Seed(ctx, s, now); err != nil {
		t.Fatalf("seed: %v", err)
	}

	counts := map[string]func(context.Context) (int, error){
		"leads":    s.Leads.Count,
		"projects": s.Projects.Count,
		"demos":    s.Demos.Count,
		"deals":    s.Deals.Count,
	}
	want := map[string]int{"leads": 5, "projects": 1, "demos": 2, "deals": 2}
	for name, count := range counts {
		n, err := count(ctx)
		if err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != want[name] {
			t.Errorf("%s = %d, want %d", name, n, want[name])
		}
	}
}

func TestSeedIdempotent(t *testing.T) {
	s := store.New(testhelpers.NewMigratedDB(t))
	ctx := context.Background()
	now := time.Now()

	if err := seed.Seed(ctx, s, now); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := seed.Seed(ctx, s, now); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	n, err := s.Leads.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Errorf("leads = %d, want 5", n)
	}
}
