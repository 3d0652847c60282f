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

// RoleStore defines the interface for user role persistence.
type RoleStore interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserRole, error)
	Create(ctx context.Context, userID, email string, role domain.Role) (*domain.UserRole, error)
}

// SQLRoleStore implements RoleStore.
type SQLRoleStore struct {
	db *database.DB
}

// NewSQLRoleStore creates a new SQLRoleStore.
func NewSQLRoleStore(db *database.DB) *SQLRoleStore {
	return &SQLRoleStore{db: db}
}

// GetByUserID returns the role row of an actor.
func (s *SQLRoleStore) GetByUserID(ctx context.Context, userID string) (*domain.UserRole, error) {
	var (
		r             domain.UserRole
		role, created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, email, role, created_at FROM user_roles WHERE user_id = ?`, userID,
	).Scan(&r.ID, &r.UserID, &r.Email, &role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user role: %w", err)
	}
	r.Role = domain.Role(role)
	if r.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &r, nil
}

// Create inserts the role row of an actor. A second row for the same actor
// returns ErrConflict.
func (s *SQLRoleStore) Create(ctx context.Context, userID, email string, role domain.Role) (*domain.UserRole, error) {
	r := &domain.UserRole{
		ID:        newID(),
		UserID:    userID,
		Email:     strings.TrimSpace(email),
		Role:      role,
		CreatedAt: now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_roles (id, user_id, email, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Email, string(r.Role), formatTime(r.CreatedAt),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert user role: %w", err)
	}
	return r, nil
}
