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

// StatusUpdateStore defines the interface for status update persistence.
type StatusUpdateStore interface {
	List(ctx context.Context, target domain.TargetType, targetID string) ([]*domain.StatusUpdate, error)
	Create(ctx context.Context, actorID string, target domain.TargetType, targetID, comment string) (*domain.StatusUpdate, error)
	Delete(ctx context.Context, actorID, id string) error
}

// SQLStatusUpdateStore implements StatusUpdateStore.
type SQLStatusUpdateStore struct {
	db *database.DB
}

// NewSQLStatusUpdateStore creates a new SQLStatusUpdateStore.
func NewSQLStatusUpdateStore(db *database.DB) *SQLStatusUpdateStore {
	return &SQLStatusUpdateStore{db: db}
}

// List returns the updates on a target, newest first.
func (s *SQLStatusUpdateStore) List(ctx context.Context, target domain.TargetType, targetID string) ([]*domain.StatusUpdate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, target_type, target_id, comment, created_at
		 FROM status_updates WHERE target_type = ? AND target_id = ?
		 ORDER BY created_at DESC`,
		string(target), targetID,
	)
	if err != nil {
		return nil, fmt.Errorf("list status updates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	updates := []*domain.StatusUpdate{}
	for rows.Next() {
		var (
			u          domain.StatusUpdate
			targetType string
			created    string
		)
		if err := rows.Scan(&u.ID, &u.UserID, &targetType, &u.TargetID, &u.Comment, &created); err != nil {
			return nil, fmt.Errorf("scan status update: %w", err)
		}
		u.TargetType = domain.TargetType(targetType)
		if u.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		updates = append(updates, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return updates, nil
}

// Create appends a comment to a target. The comment is trimmed.
func (s *SQLStatusUpdateStore) Create(ctx context.Context, actorID string, target domain.TargetType, targetID, comment string) (*domain.StatusUpdate, error) {
	u := &domain.StatusUpdate{
		ID:         newID(),
		UserID:     actorID,
		TargetType: target,
		TargetID:   targetID,
		Comment:    strings.TrimSpace(comment),
		CreatedAt:  now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO status_updates (id, user_id, target_type, target_id, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.UserID, string(u.TargetType), u.TargetID, u.Comment, formatTime(u.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert status update: %w", err)
	}
	return u, nil
}

// Delete removes an update. Only its author may delete it.
func (s *SQLStatusUpdateStore) Delete(ctx context.Context, actorID, id string) error {
	var author string
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM status_updates WHERE id = ?`, id).Scan(&author)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get status update: %w", err)
	}
	if author != actorID {
		return ErrForbidden
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM status_updates WHERE id = ? AND user_id = ?`, id, actorID); err != nil {
		return fmt.Errorf("delete status update: %w", err)
	}
	return nil
}
