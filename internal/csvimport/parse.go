// Package csvimport parses lead spreadsheets exported as CSV and imports
// them with company de-duplication.
package csvimport

import (
	"strings"

	"github.com/envaire/salesdesk/internal/domain"
)

// Header is the exact column row of an import file.
const Header = "Firm,Revenue,Website,GO/SKIP,Phone N.,Whose Phone,CEO,Called,Last contact,Notes,Status"

// minColumns is the number of columns a data row must have.
const minColumns = 11

// Record is one accepted data row.
type Record struct {
	Company     string `json:"company"`
	Revenue     string `json:"revenue"`
	Website     string `json:"website"`
	GoSkip      string `json:"go_skip"`
	Phone       string `json:"phone"`
	WhosePhone  string `json:"whose_phone"`
	CEO         string `json:"ceo"`
	Called      string `json:"called"`
	LastContact string `json:"last_contact"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
}

// Name is the lead's contact name. The CEO column is the contact person in
// these sheets, so it doubles as the name.
func (r Record) Name() string {
	if r.CEO == "" {
		return "Unknown"
	}
	return r.CEO
}

// Parse reads CSV text. The first non-blank line is the header and is
// skipped. Double quotes toggle quoting so commas inside them are kept;
// quotes cannot be escaped. Rows with fewer than eleven columns, rows marked
// skip, and rows without a company or CEO are dropped.
func Parse(text string) []Record {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	var records []Record
	for _, line := range lines[1:] {
		cols := splitLine(strings.TrimSpace(line))
		if len(cols) < minColumns {
			continue
		}

		r := Record{
			Company:     cols[0],
			Revenue:     cols[1],
			Website:     cols[2],
			GoSkip:      cols[3],
			Phone:       cols[4],
			WhosePhone:  cols[5],
			CEO:         cols[6],
			Called:      cols[7],
			LastContact: cols[8],
			Notes:       cols[9],
			Status:      cols[10],
		}

		switch {
		case strings.Contains(strings.ToLower(r.GoSkip), "skip"):
			continue
		case r.Company == "":
			continue
		case r.CEO == "":
			continue
		}
		records = append(records, r)
	}
	return records
}

func splitLine(line string) []string {
	var (
		cols     []string
		current  strings.Builder
		inQuotes bool
	)
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			cols = append(cols, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	return append(cols, strings.TrimSpace(current.String()))
}

var statusAliases = map[string]domain.LeadStatus{
	"prospect":    domain.LeadProspect,
	"qualified":   domain.LeadQualified,
	"proposal":    domain.LeadProposal,
	"negotiation": domain.LeadNegotiation,
	"closed won":  domain.LeadClosedWon,
	"closed-won":  domain.LeadClosedWon,
	"won":         domain.LeadClosedWon,
	"closed lost": domain.LeadClosedLost,
	"closed-lost": domain.LeadClosedLost,
	"lost":        domain.LeadClosedLost,
}

// NormalizeStatus maps a spreadsheet status to a lead status, defaulting to
// prospect.
func NormalizeStatus(s string) domain.LeadStatus {
	if st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return domain.LeadProspect
}

// CompanyKey is the de-duplication key of a company name.
func CompanyKey(company string) string {
	return domain.CompanyKey(company)
}
