package admin_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/envaire/salesdesk/internal/api/admin"
	"github.com/envaire/salesdesk/internal/api/apitest"
	"github.com/envaire/salesdesk/internal/domain"
)

func TestAdminRequiresAdmin(t *testing.T) {
	srv := apitest.NewServer(t, admin.RegisterRoutes)

	for _, path := range []string{"/api/v1/admin/reset", "/api/v1/admin/seed"} {
		resp := srv.Do(t, http.MethodPost, path, apitest.Alice, nil)
		apitest.ExpectStatus(t, resp, http.StatusForbidden)
	}
}

func TestAdminReset(t *testing.T) {
	srv := apitest.NewServer(t, admin.RegisterRoutes)
	ctx := context.Background()

	if _, err := srv.Store.Leads.Create(ctx, apitest.Alice.ID, domain.LeadInput{Name: "n", Company: "Stale Oy"}); err != nil {
		t.Fatalf("create lead: %v", err)
	}

	resp := srv.Do(t, http.MethodPost, "/api/v1/admin/reset", apitest.Admin, nil)
	apitest.ExpectStatus(t, resp, http.StatusOK)

	if _, err := srv.Store.Leads.FindByCompany(ctx, "Stale Oy", ""); err == nil {
		t.Error("expected old lead to be removed")
	}
	n, err := srv.Store.Leads.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n == 0 {
		t.Error("expected seeded leads after reset")
	}
}

func TestAdminSeedKeepsData(t *testing.T) {
	srv := apitest.NewServer(t, admin.RegisterRoutes)
	ctx := context.Background()

	if _, err := srv.Store.Leads.Create(ctx, apitest.Alice.ID, domain.LeadInput{Name: "n", Company: "Kept Oy"}); err != nil {
		t.Fatalf("create lead: %v", err)
	}

	resp := srv.Do(t, http.MethodPost, "/api/v1/admin/seed", apitest.Admin, nil)
	apitest.ExpectStatus(t, resp, http.StatusOK)

	n, err := srv.Store.Leads.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("leads = %d, want 1", n)
	}
}
