package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/envaire/salesdesk/internal/database"
	"github.com/envaire/salesdesk/internal/domain"
)

// DemoStore defines the interface for demo persistence. Demos are visible
// to every actor.
type DemoStore interface {
	Create(ctx context.Context, actorID string, in domain.DemoInput) (*domain.Demo, error)
	Get(ctx context.Context, id string) (*domain.Demo, error)
	List(ctx context.Context, f domain.DemoFilter) ([]*domain.Demo, error)
	Update(ctx context.Context, id string, in domain.DemoInput) (*domain.Demo, error)
	UpdateStatus(ctx context.Context, id string, status domain.DemoStatus) (*domain.Demo, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// SQLDemoStore implements DemoStore.
type SQLDemoStore struct {
	db *database.DB
}

// NewSQLDemoStore creates a new SQLDemoStore.
func NewSQLDemoStore(db *database.DB) *SQLDemoStore {
	return &SQLDemoStore{db: db}
}

const demoColumns = `id, user_id, title, description, lead_id, project_id, priority, status, due_date, created_at, updated_at`

// Create inserts a new demo.
func (s *SQLDemoStore) Create(ctx context.Context, actorID string, in domain.DemoInput) (*domain.Demo, error) {
	in.Normalize()
	trimAll(&in.Title)
	ts := now()
	d := &domain.Demo{
		ID:          newID(),
		UserID:      actorID,
		Title:       in.Title,
		Description: in.Description,
		LeadID:      in.LeadID,
		ProjectID:   in.ProjectID,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO demos (`+demoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Title, d.Description, nullString(d.LeadID), nullString(d.ProjectID),
		string(d.Priority), string(d.Status), d.DueDate.String(), formatTime(ts), formatTime(ts),
	)
	if err != nil {
		return nil, fmt.Errorf("insert demo: %w", err)
	}
	return d, nil
}

// Get returns a demo by ID.
func (s *SQLDemoStore) Get(ctx context.Context, id string) (*domain.Demo, error) {
	d, err := scanDemo(s.db.QueryRowContext(ctx,
		`SELECT `+demoColumns+` FROM demos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get demo: %w", err)
	}
	return d, nil
}

// List returns demos matching f, newest first.
func (s *SQLDemoStore) List(ctx context.Context, f domain.DemoFilter) ([]*domain.Demo, error) {
	query := `SELECT ` + demoColumns + ` FROM demos WHERE 1 = 1`
	var args []any
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, string(f.Priority))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list demos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	demos := []*domain.Demo{}
	for rows.Next() {
		d, err := scanDemo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan demo: %w", err)
		}
		demos = append(demos, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return demos, nil
}

// Update replaces the editable fields of a demo.
func (s *SQLDemoStore) Update(ctx context.Context, id string, in domain.DemoInput) (*domain.Demo, error) {
	in.Normalize()
	trimAll(&in.Title)
	res, err := s.db.ExecContext(ctx,
		`UPDATE demos SET title = ?, description = ?, lead_id = ?, project_id = ?, priority = ?,
			status = ?, due_date = ?, updated_at = ?
		 WHERE id = ?`,
		in.Title, in.Description, nullString(in.LeadID), nullString(in.ProjectID),
		string(in.Priority), string(in.Status), in.DueDate.String(), formatTime(now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update demo: %w", err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateStatus sets the progress of a demo.
func (s *SQLDemoStore) UpdateStatus(ctx context.Context, id string, status domain.DemoStatus) (*domain.Demo, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE demos SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update demo status: %w", err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a demo.
func (s *SQLDemoStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM demos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete demo: %w", err)
	}
	return expectOne(res)
}

// DeleteMany removes the listed demos.
func (s *SQLDemoStore) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM demos WHERE id IN (`+placeholders(len(ids))+`)`, idArgs(ids)...)
	if err != nil {
		return 0, fmt.Errorf("delete demos: %w", err)
	}
	return rowsAffected(res)
}

// DeleteAll removes every demo.
func (s *SQLDemoStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM demos`)
	if err != nil {
		return 0, fmt.Errorf("delete all demos: %w", err)
	}
	return rowsAffected(res)
}

// Count returns the number of demos.
func (s *SQLDemoStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM demos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count demos: %w", err)
	}
	return n, nil
}

func scanDemo(sc scanner) (*domain.Demo, error) {
	var (
		d                     domain.Demo
		leadID, projectID     sql.NullString
		priority, status      string
		due, created, updated string
	)
	if err := sc.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &leadID, &projectID,
		&priority, &status, &due, &created, &updated); err != nil {
		return nil, err
	}
	d.LeadID = leadID.String
	d.ProjectID = projectID.String
	d.Priority = domain.DemoPriority(priority)
	d.Status = domain.DemoStatus(status)

	var err error
	if d.DueDate, err = domain.ParseDate(due); err != nil {
		return nil, fmt.Errorf("parse due_date: %w", err)
	}
	if d.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if d.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &d, nil
}
