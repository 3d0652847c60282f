package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/envaire/salesdesk/internal/database"
)

// Import run states.
const (
	ImportProcessing = "PROCESSING"
	ImportDone       = "DONE"
	ImportFailed     = "FAILED"
)

// ImportRun records one CSV import and its result counters.
type ImportRun struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	FileName   string `json:"fileName,omitempty"`
	State      string `json:"state"`
	Total      int    `json:"total"`
	Imported   int    `json:"imported"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ImportError is one error message recorded against an import run.
type ImportError struct {
	ID        string `json:"id"`
	ImportID  string `json:"-"`
	Position  int    `json:"position"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// ImportCounts are the final counters of an import run.
type ImportCounts struct {
	Total      int
	Imported   int
	Duplicates int
	Skipped    int
}

// ImportStore defines the interface for import run persistence.
type ImportStore interface {
	Create(ctx context.Context, actorID, fileName string) (*ImportRun, error)
	Get(ctx context.Context, actorID, id string) (*ImportRun, error)
	List(ctx context.Context, actorID string, limit int) ([]*ImportRun, error)
	Complete(ctx context.Context, id, state string, counts ImportCounts) error
	AddError(ctx context.Context, importID string, position int, message string) error
	GetErrors(ctx context.Context, importID string) ([]*ImportError, error)
}

// SQLImportStore implements ImportStore.
type SQLImportStore struct {
	db *database.DB
}

// NewSQLImportStore creates a new SQLImportStore.
func NewSQLImportStore(db *database.DB) *SQLImportStore {
	return &SQLImportStore{db: db}
}

const importColumns = `id, user_id, file_name, state, total, imported, duplicates, skipped, created_at, updated_at`

// Create inserts a new import run in the PROCESSING state.
func (s *SQLImportStore) Create(ctx context.Context, actorID, fileName string) (*ImportRun, error) {
	ts := formatTime(now())
	run := &ImportRun{
		ID:        newID(),
		UserID:    actorID,
		FileName:  fileName,
		State:     ImportProcessing,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (id, user_id, file_name, state, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.UserID, run.FileName, run.State, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert import: %w", err)
	}
	return run, nil
}

// Get retrieves one of the actor's import runs.
func (s *SQLImportStore) Get(ctx context.Context, actorID, id string) (*ImportRun, error) {
	var run ImportRun
	err := s.db.QueryRowContext(ctx,
		`SELECT `+importColumns+` FROM imports WHERE id = ? AND user_id = ?`, id, actorID,
	).Scan(&run.ID, &run.UserID, &run.FileName, &run.State, &run.Total, &run.Imported,
		&run.Duplicates, &run.Skipped, &run.CreatedAt, &run.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get import: %w", err)
	}
	return &run, nil
}

// List returns the actor's most recent import runs.
func (s *SQLImportStore) List(ctx context.Context, actorID string, limit int) ([]*ImportRun, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+importColumns+` FROM imports WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		actorID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []*ImportRun{}
	for rows.Next() {
		var run ImportRun
		if err := rows.Scan(&run.ID, &run.UserID, &run.FileName, &run.State, &run.Total,
			&run.Imported, &run.Duplicates, &run.Skipped, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return runs, nil
}

// Complete stores the final state and counters of a run.
func (s *SQLImportStore) Complete(ctx context.Context, id, state string, counts ImportCounts) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE imports SET state = ?, total = ?, imported = ?, duplicates = ?, skipped = ?, updated_at = ?
		 WHERE id = ?`,
		state, counts.Total, counts.Imported, counts.Duplicates, counts.Skipped, formatTime(now()), id,
	)
	if err != nil {
		return fmt.Errorf("complete import: %w", err)
	}
	return expectOne(res)
}

// AddError records an error message at the given position.
func (s *SQLImportStore) AddError(ctx context.Context, importID string, position int, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_errors (id, import_id, position, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		newID(), importID, position, message, formatTime(now()),
	)
	if err != nil {
		return fmt.Errorf("add import error: %w", err)
	}
	return nil
}

// GetErrors returns all errors for an import in the order they were recorded.
func (s *SQLImportStore) GetErrors(ctx context.Context, importID string) ([]*ImportError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, message, created_at FROM import_errors WHERE import_id = ? ORDER BY position ASC`,
		importID,
	)
	if err != nil {
		return nil, fmt.Errorf("get import errors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	errs := []*ImportError{}
	for rows.Next() {
		ie := ImportError{ImportID: importID}
		if err := rows.Scan(&ie.ID, &ie.Position, &ie.Message, &ie.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan import error: %w", err)
		}
		errs = append(errs, &ie)
	}
	return errs, rows.Err()
}
