package csvimport_test

import (
	"testing"

	"github.com/envaire/salesdesk/internal/csvimport"
	"github.com/envaire/salesdesk/internal/domain"
)

func TestParseQuotedComma(t *testing.T) {
	text := csvimport.Header + "\n" +
		`"Acme, Inc",100k,https://a.com,,+1234,Bob,Jane,Yes,2024-01-01,note,prospect` + "\n"

	records := csvimport.Parse(text)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.Company != "Acme, Inc" {
		t.Errorf("Company = %q, want %q", r.Company, "Acme, Inc")
	}
	if r.CEO != "Jane" {
		t.Errorf("CEO = %q, want Jane", r.CEO)
	}
	if r.WhosePhone != "Bob" || r.Revenue != "100k" || r.Status != "prospect" {
		t.Errorf("unexpected record %+v", r)
	}
	if r.Name() != "Jane" {
		t.Errorf("Name() = %q, want the CEO", r.Name())
	}
}

func TestParseFilters(t *testing.T) {
	text := "Firm,Revenue,Website,GO/SKIP,Phone N.,Whose Phone,CEO,Called,Last contact,Notes,Status\r\n" +
		"Kept,1,w,GO,p,wp,Ceo,Yes,d,n,qualified\r\n" +
		"\r\n" +
		"Skipped,1,w,sKiP,p,wp,Ceo,Yes,d,n,prospect\n" +
		"Also skipped,1,w,do not SKIP me,p,wp,Ceo,Yes,d,n,prospect\n" +
		",1,w,,p,wp,Ceo,Yes,d,n,prospect\n" +
		"No CEO,100k,w,,p,wp,  ,Yes,d,n,prospect\n" +
		"Short,1,w,,p\n" +
		"  Padded  , 2m ,w,,p,wp, Bob ,Yes,d,n,won\n"

	records := csvimport.Parse(text)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Company != "Kept" || records[0].Status != "qualified" {
		t.Errorf("unexpected first record %+v", records[0])
	}
	if records[1].Company != "Padded" || records[1].Revenue != "2m" || records[1].CEO != "Bob" {
		t.Errorf("fields should be trimmed, got %+v", records[1])
	}
}

func TestParseHeaderOnly(t *testing.T) {
	if got := csvimport.Parse(csvimport.Header + "\n"); len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
	if got := csvimport.Parse(""); len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestParseTemplate(t *testing.T) {
	records := csvimport.Parse(csvimport.Template)
	if len(records) != 1 {
		t.Fatalf("expected the skip row to be dropped, got %d records", len(records))
	}
	if records[0].Company != "Example Company" || records[0].CEO != "John Doe" {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want domain.LeadStatus
	}{
		{"prospect", domain.LeadProspect},
		{" Qualified ", domain.LeadQualified},
		{"PROPOSAL", domain.LeadProposal},
		{"negotiation", domain.LeadNegotiation},
		{"Closed Won", domain.LeadClosedWon},
		{"closed-won", domain.LeadClosedWon},
		{"won", domain.LeadClosedWon},
		{"closed lost", domain.LeadClosedLost},
		{"closed-lost", domain.LeadClosedLost},
		{"Lost", domain.LeadClosedLost},
		{"", domain.LeadProspect},
		{"maybe later", domain.LeadProspect},
	}
	for _, tt := range tests {
		if got := csvimport.NormalizeStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
