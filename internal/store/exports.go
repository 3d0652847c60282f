package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/envaire/salesdesk/internal/database"
)

// Export states.
const (
	ExportEnqueued = "ENQUEUED"
	ExportComplete = "COMPLETE"
)

// Export is a generated leads file.
type Export struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name,omitempty"`
	Format      string `json:"format"`
	State       string `json:"state"`
	ResultData  []byte `json:"-"`
	RecordCount int    `json:"recordCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ExportStore defines the interface for export persistence.
type ExportStore interface {
	Create(ctx context.Context, actorID, name, format string) (*Export, error)
	Get(ctx context.Context, actorID, id string) (*Export, error)
	Complete(ctx context.Context, id string, data []byte, recordCount int) error
}

// SQLExportStore implements ExportStore.
type SQLExportStore struct {
	db *database.DB
}

// NewSQLExportStore creates a new SQLExportStore.
func NewSQLExportStore(db *database.DB) *SQLExportStore {
	return &SQLExportStore{db: db}
}

// Create inserts a new export record.
func (s *SQLExportStore) Create(ctx context.Context, actorID, name, format string) (*Export, error) {
	ts := formatTime(now())
	exp := &Export{
		ID:        newID(),
		UserID:    actorID,
		Name:      name,
		Format:    format,
		State:     ExportEnqueued,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, user_id, name, format, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exp.ID, exp.UserID, exp.Name, exp.Format, exp.State, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert export: %w", err)
	}
	return exp, nil
}

// Get retrieves one of the actor's exports, including the file bytes.
func (s *SQLExportStore) Get(ctx context.Context, actorID, id string) (*Export, error) {
	var exp Export
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, format, state, result_data, record_count, created_at, updated_at
		 FROM exports WHERE id = ? AND user_id = ?`,
		id, actorID,
	).Scan(&exp.ID, &exp.UserID, &exp.Name, &exp.Format, &exp.State, &exp.ResultData,
		&exp.RecordCount, &exp.CreatedAt, &exp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get export: %w", err)
	}
	return &exp, nil
}

// Complete marks an export as complete with the generated file.
func (s *SQLExportStore) Complete(ctx context.Context, id string, data []byte, recordCount int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE exports SET state = ?, result_data = ?, record_count = ?, updated_at = ? WHERE id = ?`,
		ExportComplete, data, recordCount, formatTime(now()), id,
	)
	if err != nil {
		return fmt.Errorf("complete export: %w", err)
	}
	return expectOne(res)
}
