package domain

import "time"

// ActivityLog is one audited UI or API action.
type ActivityLog struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	UserEmail     string         `json:"user_email"`
	ActionType    string         `json:"action_type"`
	ActionDetails string         `json:"action_details"`
	TargetType    string         `json:"target_type"`
	TargetID      string         `json:"target_id,omitempty"`
	TargetName    string         `json:"target_name,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	UserAgent     string         `json:"user_agent,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

var activityActions = map[string]bool{
	"click": true, "view": true, "edit": true, "create": true,
	"delete": true, "call": true, "email": true, "navigate": true,
}

var activityTargets = map[string]bool{
	"lead": true, "project": true, "demo": true, "deal": true,
	"button": true, "form": true, "page": true, "filter": true,
}

// ValidActivityAction reports whether a is a known action type.
func ValidActivityAction(a string) bool { return activityActions[a] }

// ValidActivityTarget reports whether t is a known target type.
func ValidActivityTarget(t string) bool { return activityTargets[t] }
