package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/envaire/salesdesk/internal/database"
	"github.com/envaire/salesdesk/internal/domain"
)

// ProjectStore defines the interface for project persistence. Projects are
// visible to every actor.
type ProjectStore interface {
	Create(ctx context.Context, actorID string, in domain.ProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id string, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	DeleteAll(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// SQLProjectStore implements ProjectStore.
type SQLProjectStore struct {
	db *database.DB
}

// NewSQLProjectStore creates a new SQLProjectStore.
func NewSQLProjectStore(db *database.DB) *SQLProjectStore {
	return &SQLProjectStore{db: db}
}

const projectColumns = `id, user_id, title, company, description, deadline, notes, created_at, updated_at`

// Create inserts a new project.
func (s *SQLProjectStore) Create(ctx context.Context, actorID string, in domain.ProjectInput) (*domain.Project, error) {
	trimAll(&in.Title, &in.Company)
	ts := now()
	p := &domain.Project{
		ID:                newID(),
		UserID:            actorID,
		Title:             in.Title,
		Company:           in.Company,
		Description:       in.Description,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Notes:             in.Notes,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, p.Company, p.Description, p.ExpectedCloseDate.String(),
		p.Notes, formatTime(ts), formatTime(ts),
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// Get returns a project by ID.
func (s *SQLProjectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List returns every project, newest first.
func (s *SQLProjectStore) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return projects, nil
}

// Update replaces the editable fields of a project.
func (s *SQLProjectStore) Update(ctx context.Context, id string, in domain.ProjectInput) (*domain.Project, error) {
	trimAll(&in.Title, &in.Company)
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, company = ?, description = ?, deadline = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		in.Title, in.Company, in.Description, in.ExpectedCloseDate.String(), in.Notes,
		formatTime(now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if err := expectOne(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a project.
func (s *SQLProjectStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectOne(res)
}

// DeleteMany removes the listed projects.
func (s *SQLProjectStore) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id IN (`+placeholders(len(ids))+`)`, idArgs(ids)...)
	if err != nil {
		return 0, fmt.Errorf("delete projects: %w", err)
	}
	return rowsAffected(res)
}

// DeleteAll removes every project.
func (s *SQLProjectStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects`)
	if err != nil {
		return 0, fmt.Errorf("delete all projects: %w", err)
	}
	return rowsAffected(res)
}

// Count returns the number of projects.
func (s *SQLProjectStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func scanProject(sc scanner) (*domain.Project, error) {
	var (
		p                          domain.Project
		deadline, created, updated string
	)
	if err := sc.Scan(&p.ID, &p.UserID, &p.Title, &p.Company, &p.Description, &deadline,
		&p.Notes, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if p.ExpectedCloseDate, err = domain.ParseDate(deadline); err != nil {
		return nil, fmt.Errorf("parse deadline: %w", err)
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}
