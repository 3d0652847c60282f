// Package role resolves an actor's access level.
package role

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

// Resolver looks up or lazily assigns actor roles. New actors become admins
// when their email is on the allowlist and salesmen otherwise.
type Resolver struct {
	roles  store.RoleStore
	admins map[string]bool
}

// NewResolver creates a Resolver. roles may be nil, in which case every
// actor gets the allowlist-derived role without persisting it.
func NewResolver(roles store.RoleStore, adminEmails []string) *Resolver {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			admins[e] = true
		}
	}
	return &Resolver{roles: roles, admins: admins}
}

// DefaultRole is the role an actor with email gets on first access.
func (r *Resolver) DefaultRole(email string) domain.Role {
	if r.admins[normalizeEmail(email)] {
		return domain.RoleAdmin
	}
	return domain.RoleSalesman
}

// Resolve returns the actor's role. It never fails: storage problems fall
// back to DefaultRole, unpersisted.
func (r *Resolver) Resolve(ctx context.Context, actorID, email string) domain.Role {
	fallback := r.DefaultRole(email)
	if r.roles == nil {
		return fallback
	}

	existing, err := r.roles.GetByUserID(ctx, actorID)
	if err == nil {
		return existing.Role
	}
	if !errors.Is(err, store.ErrNotFound) {
		slog.Warn("role lookup failed, using default", "actor", actorID, "error", err)
		return fallback
	}

	created, err := r.roles.Create(ctx, actorID, email, fallback)
	switch {
	case err == nil:
		slog.Info("assigned role", "actor", actorID, "role", created.Role)
		return created.Role
	case errors.Is(err, store.ErrConflict):
		// Another request created the row first.
		existing, err := r.roles.GetByUserID(ctx, actorID)
		if err == nil {
			return existing.Role
		}
		slog.Warn("role re-query failed, using default", "actor", actorID, "error", err)
	default:
		slog.Warn("role create failed, using default", "actor", actorID, "error", err)
	}
	return fallback
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
