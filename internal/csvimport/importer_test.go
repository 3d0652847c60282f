package csvimport_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/envaire/salesdesk/internal/csvimport"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
	"github.com/envaire/salesdesk/internal/testhelpers"
)

type fakeWriter struct {
	keys      map[string]struct{}
	keysErr   error
	failBatch map[int]error
	batches   [][]domain.LeadInput
}

func (f *fakeWriter) CompanyKeys(ctx context.Context) (map[string]struct{}, error) {
	if f.keysErr != nil {
		return nil, f.keysErr
	}
	out := make(map[string]struct{}, len(f.keys))
	for k := range f.keys {
		out[k] = struct{}{}
	}
	return out, nil
}

func (f *fakeWriter) InsertBatch(ctx context.Context, actorID string, leads []domain.LeadInput) error {
	f.batches = append(f.batches, leads)
	if err := f.failBatch[len(f.batches)]; err != nil {
		return err
	}
	return nil
}

func records(companies ...string) []csvimport.Record {
	out := make([]csvimport.Record, len(companies))
	for i, c := range companies {
		out[i] = csvimport.Record{Company: c, CEO: "Ceo " + c, Status: "won"}
	}
	return out
}

func TestImportDedupWithinFile(t *testing.T) {
	w := &fakeWriter{}
	im := csvimport.NewImporter(w, "HENKILÖSTÖVUOKRAUS")

	res := im.Import(context.Background(), "user-1", records("Acme", "acme "))
	if res.Total != 2 || res.Imported != 1 || res.Duplicates != 1 || res.Skipped != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(w.batches) != 1 || len(w.batches[0]) != 1 {
		t.Fatalf("expected one batch of one lead, got %v", w.batches)
	}

	in := w.batches[0][0]
	if in.Name != "Ceo Acme" || in.CEO != "Ceo Acme" {
		t.Errorf("expected CEO as name, got name=%q ceo=%q", in.Name, in.CEO)
	}
	if in.Status != domain.LeadClosedWon || in.CallStatus != domain.CallNotCalled {
		t.Errorf("unexpected status %s / %s", in.Status, in.CallStatus)
	}
	if in.Industry != "HENKILÖSTÖVUOKRAUS" {
		t.Errorf("Industry = %q", in.Industry)
	}
	if in.ScheduledCall != nil {
		t.Error("imported leads must not have a scheduled call")
	}
}

func TestImportSkipsExistingCompanies(t *testing.T) {
	w := &fakeWriter{keys: map[string]struct{}{"globex": {}}}
	res := csvimport.NewImporter(w, "IT").Import(context.Background(), "user-1", records(" GLOBEX", "Initech"))

	if res.Duplicates != 1 || res.Imported != 1 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestImportBatchFailureContinues(t *testing.T) {
	var companies []string
	for i := 0; i < 120; i++ {
		companies = append(companies, fmt.Sprintf("Company %03d", i))
	}
	w := &fakeWriter{failBatch: map[int]error{2: errors.New("connection reset")}}

	res := csvimport.NewImporter(w, "IT").Import(context.Background(), "user-1", records(companies...))
	if len(w.batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(w.batches))
	}
	if len(w.batches[0]) != csvimport.BatchSize || len(w.batches[2]) != 20 {
		t.Errorf("unexpected batch sizes %d, %d", len(w.batches[0]), len(w.batches[2]))
	}
	if res.Total != 120 || res.Imported != 70 || res.Skipped != 50 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Batch 2: connection reset" {
		t.Errorf("unexpected errors %v", res.Errors)
	}
}

func TestImportFetchFailure(t *testing.T) {
	w := &fakeWriter{keysErr: errors.New("db offline")}
	res := csvimport.NewImporter(w, "IT").Import(context.Background(), "user-1", records("Acme"))

	if res.Total != 0 || res.Imported != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Errors) != 1 || !strings.HasPrefix(res.Errors[0], "Import failed: ") {
		t.Errorf("unexpected errors %v", res.Errors)
	}
	if len(w.batches) != 0 {
		t.Error("no batch should run after a fetch failure")
	}
}

func TestImportCSVIntoStore(t *testing.T) {
	leads := store.NewSQLLeadStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()
	if _, err := leads.Create(ctx, "user-2", domain.LeadInput{Company: "Existing Oy"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	text := csvimport.Header + "\n" +
		"Acme,1m,,,+358,Me,Jane,Yes,2024-01-01,,qualified\n" +
		"acme ,1m,,,+358,Me,John,Yes,2024-01-01,,qualified\n" +
		"EXISTING OY,1m,,,+358,Me,John,Yes,2024-01-01,,qualified\n"

	res := csvimport.NewImporter(leads, "HENKILÖSTÖVUOKRAUS").ImportCSV(ctx, "user-1", text)
	if res.Total != 3 || res.Imported != 1 || res.Duplicates != 2 {
		t.Fatalf("unexpected result %+v", res)
	}

	got, err := leads.List(ctx, "user-1", domain.LeadFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Jane" || got[0].Status != domain.LeadQualified {
		t.Errorf("unexpected imported leads %+v", got)
	}
}
