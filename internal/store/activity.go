package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/envaire/salesdesk/internal/database"
	"github.com/envaire/salesdesk/internal/domain"
)

// ActivityStore defines the interface for the append-only activity log.
type ActivityStore interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// SQLActivityStore implements ActivityStore.
type SQLActivityStore struct {
	db *database.DB
}

// NewSQLActivityStore creates a new SQLActivityStore.
func NewSQLActivityStore(db *database.DB) *SQLActivityStore {
	return &SQLActivityStore{db: db}
}

// Insert appends an entry, filling its ID and timestamp when unset.
func (s *SQLActivityStore) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = newID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now()
	}

	meta := []byte("{}")
	if len(entry.Metadata) > 0 {
		var err error
		if meta, err = json.Marshal(entry.Metadata); err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_logs (id, user_id, user_email, action_type, action_details, target_type,
			target_id, target_name, metadata, user_agent, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.UserEmail, entry.ActionType, entry.ActionDetails,
		entry.TargetType, nullString(entry.TargetID), nullString(entry.TargetName),
		string(meta), nullString(entry.UserAgent), formatTime(entry.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// CountSince returns the number of entries logged at or after since.
func (s *SQLActivityStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_logs WHERE timestamp >= ?`, formatTime(since),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count activity logs: %w", err)
	}
	return n, nil
}
