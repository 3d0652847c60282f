package domain

import "time"

// Role is the access level of an actor.
type Role string

// Roles.
const (
	RoleAdmin    Role = "admin"
	RoleSalesman Role = "salesman"
)

// UserRole is the persisted role assignment of one actor.
type UserRole struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
