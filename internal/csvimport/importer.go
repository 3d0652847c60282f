package csvimport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/envaire/salesdesk/internal/domain"
)

// BatchSize is the number of leads inserted per transaction.
const BatchSize = 50

// LeadWriter is the lead persistence the importer needs.
type LeadWriter interface {
	CompanyKeys(ctx context.Context) (map[string]struct{}, error)
	InsertBatch(ctx context.Context, actorID string, leads []domain.LeadInput) error
}

// Result summarizes an import.
type Result struct {
	Total      int      `json:"total"`
	Imported   int      `json:"imported"`
	Duplicates int      `json:"duplicates"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors"`
}

// Importer turns parsed records into leads.
type Importer struct {
	leads    LeadWriter
	industry string
}

// NewImporter creates an Importer that stamps imported leads with industry.
func NewImporter(leads LeadWriter, industry string) *Importer {
	return &Importer{leads: leads, industry: industry}
}

// ImportCSV parses text and imports the records for actorID.
func (im *Importer) ImportCSV(ctx context.Context, actorID, text string) Result {
	return im.Import(ctx, actorID, Parse(text))
}

// Import inserts records in batches of BatchSize. Records whose company
// already exists, in the system or earlier in the file, count as duplicates.
// A failed batch is reported in Errors and its leads count as skipped; later
// batches still run.
func (im *Importer) Import(ctx context.Context, actorID string, records []Record) Result {
	res := Result{Errors: []string{}}

	existing, err := im.leads.CompanyKeys(ctx)
	if err != nil {
		slog.Error("import: load existing companies", "error", err)
		res.Errors = append(res.Errors, fmt.Sprintf("Import failed: %v", err))
		return res
	}
	res.Total = len(records)

	for start := 0; start < len(records); start += BatchSize {
		end := min(start+BatchSize, len(records))
		batchNo := start/BatchSize + 1

		var batch []domain.LeadInput
		for _, r := range records[start:end] {
			key := CompanyKey(r.Company)
			if _, dup := existing[key]; dup {
				res.Duplicates++
				continue
			}
			batch = append(batch, im.leadInput(r))
			existing[key] = struct{}{}
		}
		if len(batch) == 0 {
			continue
		}

		if err := im.leads.InsertBatch(ctx, actorID, batch); err != nil {
			slog.Warn("import: batch failed", "batch", batchNo, "size", len(batch), "error", err)
			res.Errors = append(res.Errors, fmt.Sprintf("Batch %d: %v", batchNo, err))
			res.Skipped += len(batch)
			continue
		}
		res.Imported += len(batch)
	}

	slog.Info("import finished",
		"actor", actorID,
		"total", res.Total,
		"imported", res.Imported,
		"duplicates", res.Duplicates,
		"skipped", res.Skipped,
	)
	return res
}

func (im *Importer) leadInput(r Record) domain.LeadInput {
	return domain.LeadInput{
		Name:       r.Name(),
		Company:    strings.TrimSpace(r.Company),
		Phone:      r.Phone,
		Status:     NormalizeStatus(r.Status),
		CallStatus: domain.CallNotCalled,
		Revenue:    r.Revenue,
		Notes:      r.Notes,
		Industry:   im.industry,
		Website:    r.Website,
		CEO:        r.CEO,
		WhosePhone: r.WhosePhone,
		GoSkip:     r.GoSkip,
	}
}
