package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/envaire/salesdesk/internal/csvimport"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/export"
)

func sampleLeads() []*domain.Lead {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []*domain.Lead{
		{Company: "Acme, Inc", Revenue: "100k", CEO: "Jane", Status: domain.LeadQualified,
			CallStatus: domain.CallAnswered, LastContact: ts, CreatedAt: ts},
		{Company: "Globex", CEO: "Hank", Status: domain.LeadProspect,
			CallStatus: domain.CallNotCalled, LastContact: ts, CreatedAt: ts},
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := export.ParseFormat(""); err != nil || f != export.FormatCSV {
		t.Errorf("ParseFormat(\"\") = %q, %v", f, err)
	}
	if f, err := export.ParseFormat("XLSX"); err != nil || f != export.FormatXLSX {
		t.Errorf("ParseFormat(XLSX) = %q, %v", f, err)
	}
	if _, err := export.ParseFormat("pdf"); err == nil {
		t.Error("expected error for pdf")
	}
}

func TestCSVRoundTripsThroughImport(t *testing.T) {
	data, err := export.Leads(export.FormatCSV, sampleLeads())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(string(data), csvimport.Header) {
		t.Errorf("export should start with the import header, got %q", strings.SplitN(string(data), "\n", 2)[0])
	}

	records := csvimport.Parse(string(data))
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Company != "Acme, Inc" || records[0].Called != "Yes" {
		t.Errorf("unexpected record %+v", records[0])
	}
	if records[1].Called != "No" || records[1].Status != "prospect" {
		t.Errorf("unexpected record %+v", records[1])
	}
}

func TestXLSX(t *testing.T) {
	data, err := export.Leads(export.FormatXLSX, sampleLeads())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Leads")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Firm" || rows[1][0] != "Acme, Inc" || rows[2][6] != "Hank" {
		t.Errorf("unexpected cells %v", rows)
	}
}
