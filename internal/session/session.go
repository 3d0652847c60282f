// Package session carries the signed-in actor through a request.
package session

import (
	"context"

	"github.com/envaire/salesdesk/internal/domain"
)

// Session is the resolved identity and role of the actor making a request.
type Session struct {
	ActorID string      `json:"user_id"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
}

// IsAdmin reports whether the actor has the admin role.
func (s Session) IsAdmin() bool { return s.Role == domain.RoleAdmin }

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
