package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/testhelpers"
)

var _ store.StatusUpdateStore = (*store.SQLStatusUpdateStore)(nil)

func TestStatusUpdates(t *testing.T) {
	s := store.NewSQLStatusUpdateStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	u, err := s.Create(ctx, "user-1", domain.TargetDemo, "demo-1", "  went well  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Comment != "went well" {
		t.Errorf("expected trimmed comment, got %q", u.Comment)
	}
	if _, err := s.Create(ctx, "user-2", domain.TargetProject, "demo-1", "other target"); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := s.List(ctx, domain.TargetDemo, "demo-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != u.ID {
		t.Fatalf("expected only the demo update, got %d", len(list))
	}

	if err := s.Delete(ctx, "user-2", u.ID); !errors.Is(err, store.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author, got %v", err)
	}
	if err := s.Delete(ctx, "user-1", u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "user-1", u.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
