package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/envaire/salesdesk/internal/database"
	"github.com/envaire/salesdesk/internal/domain"
)

// DealStore defines the interface for deal persistence. Deals belong to the
// actor that closed them; ListAll spans every actor for admin rollups.
type DealStore interface {
	Create(ctx context.Context, actorID string, in domain.DealInput) (*domain.Deal, error)
	Get(ctx context.Context, actorID, id string) (*domain.Deal, error)
	List(ctx context.Context, actorID string, f domain.DealFilter) ([]*domain.Deal, error)
	ListAll(ctx context.Context) ([]*domain.Deal, error)
	Update(ctx context.Context, actorID, id string, in domain.DealInput) (*domain.Deal, error)
	Delete(ctx context.Context, actorID, id string) error
	Count(ctx context.Context) (int, error)
}

// SQLDealStore implements DealStore.
type SQLDealStore struct {
	db *database.DB
}

// NewSQLDealStore creates a new SQLDealStore.
func NewSQLDealStore(db *database.DB) *SQLDealStore {
	return &SQLDealStore{db: db}
}

const dealColumns = `id, user_id, lead_id, title, company, description, deal_value, payment_type,
	monthly_amount, installation_fee, contract_length_months, closed_date, status,
	salesman_name, salesman_email, created_at, updated_at`

// Create inserts a new deal owned by actorID.
func (s *SQLDealStore) Create(ctx context.Context, actorID string, in domain.DealInput) (*domain.Deal, error) {
	in.Normalize()
	trimAll(&in.Title, &in.Company, &in.SalesmanName, &in.SalesmanEmail)
	ts := now()
	d := &domain.Deal{
		ID:                   newID(),
		UserID:               actorID,
		LeadID:               in.LeadID,
		Title:                in.Title,
		Company:              in.Company,
		Description:          in.Description,
		DealValue:            in.DealValue,
		PaymentType:          in.PaymentType,
		MonthlyAmount:        in.MonthlyAmount,
		InstallationFee:      in.InstallationFee,
		ContractLengthMonths: in.ContractLengthMonths,
		ClosedDate:           in.ClosedDate,
		Status:               in.Status,
		SalesmanName:         in.SalesmanName,
		SalesmanEmail:        in.SalesmanEmail,
		CreatedAt:            ts,
		UpdatedAt:            ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deals (`+dealColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, nullString(d.LeadID), d.Title, d.Company, d.Description, d.DealValue,
		string(d.PaymentType), d.MonthlyAmount, d.InstallationFee, d.ContractLengthMonths,
		d.ClosedDate.String(), string(d.Status), d.SalesmanName, d.SalesmanEmail,
		formatTime(ts), formatTime(ts),
	)
	if err != nil {
		return nil, fmt.Errorf("insert deal: %w", err)
	}
	return d, nil
}

// Get returns one of the actor's deals.
func (s *SQLDealStore) Get(ctx context.Context, actorID, id string) (*domain.Deal, error) {
	d, err := scanDeal(s.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE id = ? AND user_id = ?`, id, actorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return d, nil
}

// List returns the actor's deals matching f, most recently closed first.
func (s *SQLDealStore) List(ctx context.Context, actorID string, f domain.DealFilter) ([]*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE user_id = ?`
	args := []any{actorID}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.PaymentType != "" {
		query += ` AND payment_type = ?`
		args = append(args, string(f.PaymentType))
	}
	if strings.TrimSpace(f.Query) != "" {
		p := likePattern(f.Query)
		query += ` AND (lower(title) LIKE ? OR lower(company) LIKE ?)`
		args = append(args, p, p)
	}
	query += ` ORDER BY closed_date DESC, created_at DESC`

	deals, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return deals, nil
}

// ListAll returns every deal in the system, most recently closed first.
func (s *SQLDealStore) ListAll(ctx context.Context) ([]*domain.Deal, error) {
	deals, err := s.query(ctx,
		`SELECT `+dealColumns+` FROM deals ORDER BY closed_date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all deals: %w", err)
	}
	return deals, nil
}

// Update replaces the editable fields of one of the actor's deals.
func (s *SQLDealStore) Update(ctx context.Context, actorID, id string, in domain.DealInput) (*domain.Deal, error) {
	in.Normalize()
	trimAll(&in.Title, &in.Company, &in.SalesmanName, &in.SalesmanEmail)
	res, err := s.db.ExecContext(ctx,
		`UPDATE deals SET lead_id = ?, title = ?, company = ?, description = ?, deal_value = ?,
			payment_type = ?, monthly_amount = ?, installation_fee = ?, contract_length_months = ?,
			closed_date = ?, status = ?, salesman_name = ?, salesman_email = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		nullString(in.LeadID), in.Title, in.Company, in.Description, in.DealValue,
		string(in.PaymentType), in.MonthlyAmount, in.InstallationFee, in.ContractLengthMonths,
		in.ClosedDate.String(), string(in.Status), in.SalesmanName, in.SalesmanEmail,
		formatTime(now()), id, actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("update deal: %w", err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, actorID, id)
}

// Delete removes one of the actor's deals.
func (s *SQLDealStore) Delete(ctx context.Context, actorID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ? AND user_id = ?`, id, actorID)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	return expectOne(res)
}

// Count returns the number of deals.
func (s *SQLDealStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count deals: %w", err)
	}
	return n, nil
}

func (s *SQLDealStore) query(ctx context.Context, query string, args ...any) ([]*domain.Deal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	deals := []*domain.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return deals, nil
}

func scanDeal(sc scanner) (*domain.Deal, error) {
	var (
		d                        domain.Deal
		leadID                   sql.NullString
		paymentType, status      string
		closed, created, updated string
	)
	if err := sc.Scan(&d.ID, &d.UserID, &leadID, &d.Title, &d.Company, &d.Description,
		&d.DealValue, &paymentType, &d.MonthlyAmount, &d.InstallationFee,
		&d.ContractLengthMonths, &closed, &status, &d.SalesmanName, &d.SalesmanEmail,
		&created, &updated); err != nil {
		return nil, err
	}
	d.LeadID = leadID.String
	d.PaymentType = domain.PaymentType(paymentType)
	d.Status = domain.DealStatus(status)

	var err error
	if d.ClosedDate, err = domain.ParseDate(closed); err != nil {
		return nil, fmt.Errorf("parse closed_date: %w", err)
	}
	if d.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if d.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &d, nil
}
