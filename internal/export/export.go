// Package export renders leads as downloadable spreadsheets. The first
// eleven columns follow the import template so an export can be re-imported.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/envaire/salesdesk/internal/domain"
)

// Format is an export file type.
type Format string

// Export formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses a format name. An empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q: must be csv or xlsx", s)
}

// ContentType is the MIME type of files in format f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Columns is the header row of an export.
var Columns = []string{
	"Firm", "Revenue", "Website", "GO/SKIP", "Phone N.", "Whose Phone", "CEO",
	"Called", "Last contact", "Notes", "Status",
	"Name", "Email", "Position", "Industry", "Call status", "Scheduled call", "Created",
}

const sheetName = "Leads"

// Row returns the export cells of a lead, aligned with Columns.
func Row(l *domain.Lead) []string {
	called := "No"
	if l.CallStatus != domain.CallNotCalled && l.CallStatus != "" {
		called = "Yes"
	}
	scheduled := ""
	if l.ScheduledCall != nil {
		scheduled = l.ScheduledCall.UTC().Format("2006-01-02 15:04")
	}
	lastContact := ""
	if !l.LastContact.IsZero() {
		lastContact = l.LastContact.UTC().Format(domain.DateLayout)
	}
	return []string{
		l.Company, l.Revenue, l.Website, l.GoSkip, l.Phone, l.WhosePhone, l.CEO,
		called, lastContact, l.Notes, string(l.Status),
		l.Name, l.Email, l.Position, l.Industry, string(l.CallStatus), scheduled,
		l.CreatedAt.UTC().Format(domain.DateLayout),
	}
}

// Leads renders leads in format f.
func Leads(f Format, leads []*domain.Lead) ([]byte, error) {
	switch f {
	case FormatXLSX:
		return leadsXLSX(leads)
	default:
		return leadsCSV(leads)
	}
}

func leadsCSV(leads []*domain.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, l := range leads {
		if err := w.Write(Row(l)); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func leadsXLSX(leads []*domain.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	if err := setRow(f, 1, Columns); err != nil {
		return nil, err
	}
	for i, l := range leads {
		if err := setRow(f, i+2, Row(l)); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
