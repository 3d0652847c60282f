package store

import (
	"strings"

	"github.com/envaire/salesdesk/internal/database"
	"github.com/envaire/salesdesk/internal/domain"
)

// Store holds all sub-stores used by the application.
type Store struct {
	DB            *database.DB
	Leads         LeadStore
	Projects      ProjectStore
	Demos         DemoStore
	Deals         DealStore
	StatusUpdates StatusUpdateStore
	Roles         RoleStore
	Activity      ActivityStore
	Imports       ImportStore
	Exports       ExportStore
}

// New creates a Store with all sub-stores initialized.
func New(db *database.DB) *Store {
	return &Store{
		DB:            db,
		Leads:         NewSQLLeadStore(db),
		Projects:      NewSQLProjectStore(db),
		Demos:         NewSQLDemoStore(db),
		Deals:         NewSQLDealStore(db),
		StatusUpdates: NewSQLStatusUpdateStore(db),
		Roles:         NewSQLRoleStore(db),
		Activity:      NewSQLActivityStore(db),
		Imports:       NewSQLImportStore(db),
		Exports:       NewSQLExportStore(db),
	}
}

// HasCompany reports whether company collides with a key in keys. It is the
// advisory duplicate pre-check; the unique index on leads stays authoritative.
func HasCompany(keys map[string]struct{}, company string) bool {
	key := domain.CompanyKey(company)
	if key == "" {
		return false
	}
	_, ok := keys[key]
	return ok
}

// trimAll trims surrounding whitespace from each value in place.
func trimAll(vals ...*string) {
	for _, v := range vals {
		*v = strings.TrimSpace(*v)
	}
}
