package domain

import "time"

// TargetType names the entity a status update is attached to.
type TargetType string

// Status update targets.
const (
	TargetDemo    TargetType = "demo"
	TargetProject TargetType = "project"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	return t == TargetDemo || t == TargetProject
}

// StatusUpdate is a free-text progress comment on a demo or project.
type StatusUpdate struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	TargetType TargetType `json:"target_type"`
	TargetID   string     `json:"target_id"`
	Comment    string     `json:"comment"`
	CreatedAt  time.Time  `json:"created_at"`
}
