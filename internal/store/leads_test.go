package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/testhelpers"
)

var _ store.LeadStore = (*store.SQLLeadStore)(nil)

func setupLeadStore(t *testing.T) *store.SQLLeadStore {
	t.Helper()
	return store.NewSQLLeadStore(testhelpers.NewMigratedDB(t))
}

func createLead(t *testing.T, s *store.SQLLeadStore, actor, company string) *domain.Lead {
	t.Helper()
	l, err := s.Create(context.Background(), actor, domain.LeadInput{Company: company, Name: "Jane"})
	if err != nil {
		t.Fatalf("create lead %q: %v", company, err)
	}
	return l
}

func TestLeadCreateDefaults(t *testing.T) {
	s := setupLeadStore(t)

	l, err := s.Create(context.Background(), "user-1", domain.LeadInput{Company: "  Acme  ", Name: "Jane"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.Company != "Acme" {
		t.Errorf("expected trimmed company, got %q", l.Company)
	}
	if l.Status != domain.LeadProspect {
		t.Errorf("expected status=prospect, got %s", l.Status)
	}
	if l.CallStatus != domain.CallNotCalled {
		t.Errorf("expected call_status=not_called, got %s", l.CallStatus)
	}
	if l.ScheduledCall != nil {
		t.Errorf("expected no scheduled call, got %v", l.ScheduledCall)
	}
}

func TestLeadCreateDuplicateCompany(t *testing.T) {
	s := setupLeadStore(t)
	createLead(t, s, "user-1", "Acme")

	_, err := s.Create(context.Background(), "user-2", domain.LeadInput{Company: "  ACME "})
	if !errors.Is(err, store.ErrDuplicateCompany) {
		t.Fatalf("expected ErrDuplicateCompany, got %v", err)
	}
}

func TestLeadGetScopedToActor(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()
	l := createLead(t, s, "user-1", "Acme")

	got, err := s.Get(ctx, "user-1", l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Company != "Acme" {
		t.Errorf("expected company=Acme, got %s", got.Company)
	}
	if _, err := s.Get(ctx, "user-2", l.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other actor, got %v", err)
	}
}

func TestLeadListFiltersAndSort(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()

	inputs := []domain.LeadInput{
		{Company: "Beta", Revenue: "500k", Status: domain.LeadQualified, Industry: "IT"},
		{Company: "Alpha", Revenue: "2m", Status: domain.LeadProspect, Email: "ceo@alpha.fi"},
		{Company: "Gamma", Revenue: "n/a", Status: domain.LeadProspect},
		{Company: "Delta", Revenue: "1,000", Status: domain.LeadClosedWon},
	}
	for _, in := range inputs {
		if _, err := s.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("create %s: %v", in.Company, err)
		}
	}
	createLead(t, s, "user-2", "Other")

	all, err := s.List(ctx, "user-1", domain.LeadFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 leads, got %d", len(all))
	}

	prospects, err := s.List(ctx, "user-1", domain.LeadFilter{Status: domain.LeadProspect})
	if err != nil {
		t.Fatalf("list prospects: %v", err)
	}
	if len(prospects) != 2 {
		t.Errorf("expected 2 prospects, got %d", len(prospects))
	}

	found, err := s.List(ctx, "user-1", domain.LeadFilter{Query: "ALPHA.FI"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Company != "Alpha" {
		t.Errorf("expected Alpha from search, got %v", companies(found))
	}

	byCompany, err := s.List(ctx, "user-1", domain.LeadFilter{Sort: domain.LeadSortCompany})
	if err != nil {
		t.Fatalf("sort company: %v", err)
	}
	if got := companies(byCompany); got[0] != "Alpha" || got[3] != "Gamma" {
		t.Errorf("unexpected company order %v", got)
	}

	byRevenue, err := s.List(ctx, "user-1", domain.LeadFilter{Sort: domain.LeadSortRevenue})
	if err != nil {
		t.Fatalf("sort revenue: %v", err)
	}
	want := []string{"Alpha", "Beta", "Delta", "Gamma"}
	for i, c := range companies(byRevenue) {
		if c != want[i] {
			t.Errorf("revenue order = %v, want %v", companies(byRevenue), want)
			break
		}
	}
}

func companies(leads []*domain.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.Company
	}
	return out
}

func TestLeadUpdate(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()
	l := createLead(t, s, "user-1", "Acme")
	createLead(t, s, "user-1", "Globex")

	updated, err := s.Update(ctx, "user-1", l.ID, domain.LeadInput{Company: "Acme Oy", Status: domain.LeadProposal})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Company != "Acme Oy" || updated.Status != domain.LeadProposal {
		t.Errorf("unexpected lead after update: %+v", updated)
	}

	_, err = s.Update(ctx, "user-1", l.ID, domain.LeadInput{Company: "globex"})
	if !errors.Is(err, store.ErrDuplicateCompany) {
		t.Errorf("expected ErrDuplicateCompany, got %v", err)
	}

	_, err = s.Update(ctx, "user-2", l.ID, domain.LeadInput{Company: "Hijack"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other actor, got %v", err)
	}
}

func TestLeadQuickEdits(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()
	l := createLead(t, s, "user-1", "Acme")

	got, err := s.UpdateStatus(ctx, "user-1", l.ID, domain.LeadNegotiation)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != domain.LeadNegotiation {
		t.Errorf("expected negotiation, got %s", got.Status)
	}

	got, err = s.UpdateCallStatus(ctx, "user-1", l.ID, domain.CallVoicemail)
	if err != nil {
		t.Fatalf("update call status: %v", err)
	}
	if got.CallStatus != domain.CallVoicemail {
		t.Errorf("expected voicemail, got %s", got.CallStatus)
	}

	at := time.Date(2030, 1, 2, 9, 30, 0, 0, time.UTC)
	got, err = s.SetScheduledCall(ctx, "user-1", l.ID, &at)
	if err != nil {
		t.Fatalf("schedule call: %v", err)
	}
	if got.ScheduledCall == nil || !got.ScheduledCall.Equal(at) {
		t.Errorf("expected scheduled call %v, got %v", at, got.ScheduledCall)
	}

	got, err = s.SetScheduledCall(ctx, "user-1", l.ID, nil)
	if err != nil {
		t.Fatalf("clear call: %v", err)
	}
	if got.ScheduledCall != nil {
		t.Errorf("expected cleared scheduled call, got %v", got.ScheduledCall)
	}
}

func TestLeadDeletes(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()

	a := createLead(t, s, "user-1", "A")
	b := createLead(t, s, "user-1", "B")
	createLead(t, s, "user-1", "C")
	createLead(t, s, "user-1", "D")
	other := createLead(t, s, "user-2", "E")

	if err := s.Delete(ctx, "user-1", a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "user-1", a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	n, err := s.DeleteMany(ctx, "user-1", []string{b.ID, other.ID})
	if err != nil {
		t.Fatalf("delete many: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	n, err = s.DeleteAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	total, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Errorf("expected the other actor's lead to survive, got %d", total)
	}
}

func TestLeadCompanyLookups(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()
	l := createLead(t, s, "user-1", "Acme Oy")
	createLead(t, s, "user-2", "Globex")

	keys, err := s.CompanyKeys(ctx)
	if err != nil {
		t.Fatalf("company keys: %v", err)
	}
	if !store.HasCompany(keys, " ACME OY") {
		t.Error("expected HasCompany to match case-insensitively")
	}
	if !store.HasCompany(keys, "globex") {
		t.Error("expected keys to span actors")
	}
	if store.HasCompany(keys, "Initech") {
		t.Error("unexpected match for Initech")
	}

	found, err := s.FindByCompany(ctx, "acme oy ", "")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.ID != l.ID {
		t.Errorf("expected %s, got %s", l.ID, found.ID)
	}
	if _, err := s.FindByCompany(ctx, "Acme Oy", l.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected excluded id to be skipped, got %v", err)
	}
}

func TestLeadCompanyNonASCII(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()
	l := createLead(t, s, "user-1", "ÄÄNI Oy")

	for _, q := range []string{"ÄÄNI Oy", "ääni oy", " Ääni OY "} {
		found, err := s.FindByCompany(ctx, q, "")
		if err != nil {
			t.Fatalf("find %q: %v", q, err)
		}
		if found.ID != l.ID {
			t.Errorf("find %q: expected %s, got %s", q, l.ID, found.ID)
		}
	}

	if _, err := s.Create(ctx, "user-2", domain.LeadInput{Company: "ääni oy", Name: "Jane"}); !errors.Is(err, store.ErrDuplicateCompany) {
		t.Errorf("create: expected ErrDuplicateCompany, got %v", err)
	}
	if err := s.InsertBatch(ctx, "user-2", []domain.LeadInput{{Company: "ÄÄNI OY"}}); !errors.Is(err, store.ErrDuplicateCompany) {
		t.Errorf("insert batch: expected ErrDuplicateCompany, got %v", err)
	}

	other := createLead(t, s, "user-2", "Örn Oy")
	_, err := s.Update(ctx, "user-2", other.ID, domain.LeadInput{Company: "ääni OY", Name: "Jane"})
	if !errors.Is(err, store.ErrDuplicateCompany) {
		t.Errorf("update: expected ErrDuplicateCompany, got %v", err)
	}

	// Renaming to a different case of its own name is not a collision.
	if _, err := s.Update(ctx, "user-2", other.ID, domain.LeadInput{Company: "ÖRN OY", Name: "Jane"}); err != nil {
		t.Errorf("update own company case: %v", err)
	}
	if _, err := s.FindByCompany(ctx, "örn oy", ""); err != nil {
		t.Errorf("expected renamed company to be found: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 leads, got %d", n)
	}
}

func TestHasCompanyBlank(t *testing.T) {
	keys := map[string]struct{}{"": {}}
	if store.HasCompany(keys, "   ") {
		t.Error("blank company must never collide")
	}
}

func TestLeadListActive(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()

	for _, in := range []domain.LeadInput{
		{Company: "Open", Status: domain.LeadProspect},
		{Company: "Won", Status: domain.LeadClosedWon},
		{Company: "Talking", Status: domain.LeadNegotiation},
	} {
		if _, err := s.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	createLead(t, s, "user-2", "Elsewhere")

	mine, err := s.ListActive(ctx, "user-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 active leads, got %v", companies(mine))
	}

	all, err := s.ListActive(ctx, "")
	if err != nil {
		t.Fatalf("list active all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 active leads across actors, got %v", companies(all))
	}
}

func TestLeadInsertBatchIsAtomic(t *testing.T) {
	s := setupLeadStore(t)
	ctx := context.Background()
	createLead(t, s, "user-1", "Taken")

	batch := []domain.LeadInput{{Company: "Fresh"}, {Company: "taken"}}
	if err := s.InsertBatch(ctx, "user-1", batch); !errors.Is(err, store.ErrDuplicateCompany) {
		t.Fatalf("expected ErrDuplicateCompany, got %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected failed batch to roll back, got %d leads", n)
	}

	if err := s.InsertBatch(ctx, "user-1", []domain.LeadInput{{Company: "One"}, {Company: "Two"}}); err != nil {
		t.Fatalf("insert batch: %v", err)
	}
	if n, _ := s.Count(ctx); n != 3 {
		t.Errorf("expected 3 leads, got %d", n)
	}
}
