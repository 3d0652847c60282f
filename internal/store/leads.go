package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/envaire/salesdesk/internal/database"
	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/revenue"
)

// LeadStore defines the interface for lead persistence. Reads and writes are
// scoped to the acting user except for the company lookups, which span the
// whole system.
type LeadStore interface {
	Create(ctx context.Context, actorID string, in domain.LeadInput) (*domain.Lead, error)
	Get(ctx context.Context, actorID, id string) (*domain.Lead, error)
	List(ctx context.Context, actorID string, f domain.LeadFilter) ([]*domain.Lead, error)
	Update(ctx context.Context, actorID, id string, in domain.LeadInput) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, actorID, id string, status domain.LeadStatus) (*domain.Lead, error)
	UpdateCallStatus(ctx context.Context, actorID, id string, status domain.CallStatus) (*domain.Lead, error)
	SetScheduledCall(ctx context.Context, actorID, id string, at *time.Time) (*domain.Lead, error)
	Delete(ctx context.Context, actorID, id string) error
	DeleteMany(ctx context.Context, actorID string, ids []string) (int, error)
	DeleteAll(ctx context.Context, actorID string) (int, error)
	CompanyKeys(ctx context.Context) (map[string]struct{}, error)
	FindByCompany(ctx context.Context, company, excludeID string) (*domain.Lead, error)
	ListActive(ctx context.Context, actorID string) ([]*domain.Lead, error)
	Count(ctx context.Context) (int, error)
	InsertBatch(ctx context.Context, actorID string, leads []domain.LeadInput) error
}

// SQLLeadStore implements LeadStore on SQLite or PostgreSQL.
type SQLLeadStore struct {
	db *database.DB
}

// NewSQLLeadStore creates a new SQLLeadStore.
func NewSQLLeadStore(db *database.DB) *SQLLeadStore {
	return &SQLLeadStore{db: db}
}

const leadColumns = `id, user_id, name, email, phone, company, position, status, call_status,
	revenue, notes, industry, website, ceo, whose_phone, go_skip, last_contact, scheduled_call,
	created_at, updated_at`

// company_key holds domain.CompanyKey(company). It is computed here rather
// than with SQL lower(), which only folds ASCII on SQLite.
const insertLeadSQL = `INSERT INTO leads (` + leadColumns + `, company_key)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Create inserts a new lead owned by actorID.
func (s *SQLLeadStore) Create(ctx context.Context, actorID string, in domain.LeadInput) (*domain.Lead, error) {
	in.Normalize()
	l := newLead(actorID, in, now())

	if _, err := s.db.ExecContext(ctx, insertLeadSQL, leadArgs(l)...); err != nil {
		return nil, leadWriteError("insert lead", l.Company, err)
	}
	return l, nil
}

// Get returns one of the actor's leads.
func (s *SQLLeadStore) Get(ctx context.Context, actorID, id string) (*domain.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = ? AND user_id = ?`, id, actorID)
	l, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// List returns the actor's leads matching f.
func (s *SQLLeadStore) List(ctx context.Context, actorID string, f domain.LeadFilter) ([]*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = ?`
	args := []any{actorID}

	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.CallStatus != "" {
		query += ` AND call_status = ?`
		args = append(args, string(f.CallStatus))
	}
	if f.Industry != "" {
		query += ` AND industry = ?`
		args = append(args, f.Industry)
	}
	if strings.TrimSpace(f.Query) != "" {
		p := likePattern(f.Query)
		query += ` AND (lower(name) LIKE ? OR lower(company) LIKE ? OR lower(email) LIKE ?)`
		args = append(args, p, p, p)
	}

	switch f.Sort {
	case domain.LeadSortCompany:
		query += ` ORDER BY lower(company) ASC, created_at DESC`
	case domain.LeadSortStatus:
		query += ` ORDER BY CASE status
			WHEN 'prospect' THEN 1 WHEN 'qualified' THEN 2 WHEN 'proposal' THEN 3
			WHEN 'negotiation' THEN 4 WHEN 'closed-won' THEN 5 ELSE 6 END, created_at DESC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	leads, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	if f.Sort == domain.LeadSortRevenue {
		sortByRevenue(leads)
	}
	return leads, nil
}

// sortByRevenue orders leads by parsed revenue, largest first. Leads whose
// revenue text does not parse go last, keeping their relative order.
func sortByRevenue(leads []*domain.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		a, aok := revenue.ParseRevenue(leads[i].Revenue)
		b, bok := revenue.ParseRevenue(leads[j].Revenue)
		if aok != bok {
			return aok
		}
		return a > b
	})
}

// Update replaces the editable fields of one of the actor's leads.
func (s *SQLLeadStore) Update(ctx context.Context, actorID, id string, in domain.LeadInput) (*domain.Lead, error) {
	in.Normalize()
	trimAll(&in.Company, &in.Name, &in.Email)

	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET name = ?, email = ?, phone = ?, company = ?, company_key = ?, position = ?,
			status = ?, call_status = ?, revenue = ?, notes = ?, industry = ?, website = ?, ceo = ?,
			whose_phone = ?, go_skip = ?, scheduled_call = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		in.Name, in.Email, in.Phone, in.Company, domain.CompanyKey(in.Company), in.Position, string(in.Status),
		string(in.CallStatus), in.Revenue, in.Notes, in.Industry, in.Website, in.CEO,
		in.WhosePhone, in.GoSkip, formatNullTime(in.ScheduledCall), formatTime(now()),
		id, actorID,
	)
	if err != nil {
		return nil, leadWriteError("update lead", in.Company, err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, actorID, id)
}

// UpdateStatus sets the pipeline status of one of the actor's leads.
func (s *SQLLeadStore) UpdateStatus(ctx context.Context, actorID, id string, status domain.LeadStatus) (*domain.Lead, error) {
	return s.setColumn(ctx, actorID, id, "status", string(status))
}

// UpdateCallStatus records a call outcome and bumps last_contact.
func (s *SQLLeadStore) UpdateCallStatus(ctx context.Context, actorID, id string, status domain.CallStatus) (*domain.Lead, error) {
	ts := formatTime(now())
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET call_status = ?, last_contact = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		string(status), ts, ts, id, actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("update call status: %w", err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, actorID, id)
}

// SetScheduledCall sets or, with a nil time, clears the callback time.
func (s *SQLLeadStore) SetScheduledCall(ctx context.Context, actorID, id string, at *time.Time) (*domain.Lead, error) {
	return s.setColumn(ctx, actorID, id, "scheduled_call", formatNullTime(at))
}

func (s *SQLLeadStore) setColumn(ctx context.Context, actorID, id, column string, value any) (*domain.Lead, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET `+column+` = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		value, formatTime(now()), id, actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("update lead %s: %w", column, err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, actorID, id)
}

// Delete removes one of the actor's leads.
func (s *SQLLeadStore) Delete(ctx context.Context, actorID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ? AND user_id = ?`, id, actorID)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return expectOne(res)
}

// DeleteMany removes the listed leads the actor owns and returns the count.
func (s *SQLLeadStore) DeleteMany(ctx context.Context, actorID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := append([]any{actorID}, idArgs(ids)...)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM leads WHERE user_id = ? AND id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete leads: %w", err)
	}
	return rowsAffected(res)
}

// DeleteAll removes every lead the actor owns in one statement.
func (s *SQLLeadStore) DeleteAll(ctx context.Context, actorID string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE user_id = ?`, actorID)
	if err != nil {
		return 0, fmt.Errorf("delete all leads: %w", err)
	}
	return rowsAffected(res)
}

// CompanyKeys returns the normalized company of every lead in the system.
func (s *SQLLeadStore) CompanyKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT company FROM leads`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := make(map[string]struct{})
	for rows.Next() {
		var company string
		if err := rows.Scan(&company); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		if k := domain.CompanyKey(company); k != "" {
			keys[k] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return keys, nil
}

// FindByCompany looks up a lead by company across all actors, ignoring case
// and surrounding whitespace. excludeID skips the lead being edited.
func (s *SQLLeadStore) FindByCompany(ctx context.Context, company, excludeID string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE company_key = ?`
	args := []any{domain.CompanyKey(company)}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	query += ` LIMIT 1`

	l, err := scanLead(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead by company: %w", err)
	}
	return l, nil
}

// ListActive returns leads in an open pipeline stage, oldest first. An empty
// actorID spans every actor.
func (s *SQLLeadStore) ListActive(ctx context.Context, actorID string) ([]*domain.Lead, error) {
	statuses := make([]any, len(domain.ActiveLeadStatuses))
	for i, st := range domain.ActiveLeadStatuses {
		statuses[i] = string(st)
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE status IN (` + placeholders(len(statuses)) + `)`
	args := statuses
	if actorID != "" {
		query += ` AND user_id = ?`
		args = append(args, actorID)
	}
	query += ` ORDER BY created_at ASC`

	leads, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active leads: %w", err)
	}
	return leads, nil
}

// Count returns the number of leads in the system.
func (s *SQLLeadStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

// InsertBatch inserts leads in a single transaction. Either every lead is
// written or none is.
func (s *SQLLeadStore) InsertBatch(ctx context.Context, actorID string, leads []domain.LeadInput) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	ts := now()
	for _, in := range leads {
		in.Normalize()
		l := newLead(actorID, in, ts)
		if _, err := tx.ExecContext(ctx, insertLeadSQL, leadArgs(l)...); err != nil {
			_ = tx.Rollback()
			return leadWriteError("insert lead", l.Company, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (s *SQLLeadStore) query(ctx context.Context, query string, args ...any) ([]*domain.Lead, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	leads := []*domain.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return leads, nil
}

func newLead(actorID string, in domain.LeadInput, ts time.Time) *domain.Lead {
	trimAll(&in.Company, &in.Name, &in.Email)
	return &domain.Lead{
		ID:            newID(),
		UserID:        actorID,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Company:       in.Company,
		Position:      in.Position,
		Status:        in.Status,
		CallStatus:    in.CallStatus,
		Revenue:       in.Revenue,
		Notes:         in.Notes,
		Industry:      in.Industry,
		Website:       in.Website,
		CEO:           in.CEO,
		WhosePhone:    in.WhosePhone,
		GoSkip:        in.GoSkip,
		LastContact:   ts,
		ScheduledCall: in.ScheduledCall,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

func leadArgs(l *domain.Lead) []any {
	return []any{
		l.ID, l.UserID, l.Name, l.Email, l.Phone, l.Company, l.Position,
		string(l.Status), string(l.CallStatus), l.Revenue, l.Notes, l.Industry,
		l.Website, l.CEO, l.WhosePhone, l.GoSkip, formatTime(l.LastContact),
		formatNullTime(l.ScheduledCall), formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
		domain.CompanyKey(l.Company),
	}
}

func scanLead(sc scanner) (*domain.Lead, error) {
	var (
		l                             domain.Lead
		status, callStatus            string
		lastContact, created, updated string
		scheduled                     sql.NullString
	)
	err := sc.Scan(&l.ID, &l.UserID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Position,
		&status, &callStatus, &l.Revenue, &l.Notes, &l.Industry, &l.Website, &l.CEO,
		&l.WhosePhone, &l.GoSkip, &lastContact, &scheduled, &created, &updated)
	if err != nil {
		return nil, err
	}
	l.Status = domain.LeadStatus(status)
	l.CallStatus = domain.CallStatus(callStatus)

	if l.LastContact, err = parseTime(lastContact); err != nil {
		return nil, fmt.Errorf("parse last_contact: %w", err)
	}
	if l.ScheduledCall, err = parseNullTime(scheduled); err != nil {
		return nil, fmt.Errorf("parse scheduled_call: %w", err)
	}
	if l.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if l.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &l, nil
}

// leadWriteError maps a company uniqueness violation to ErrDuplicateCompany.
func leadWriteError(op, company string, err error) error {
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %q", ErrDuplicateCompany, company)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOne returns ErrNotFound when an update or delete touched no row.
func expectOne(res sql.Result) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
