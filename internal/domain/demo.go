package domain

import "time"

// DemoPriority ranks demos in the task list.
type DemoPriority string

// Demo priorities.
const (
	PriorityLow    DemoPriority = "low"
	PriorityMedium DemoPriority = "medium"
	PriorityHigh   DemoPriority = "high"
)

// Valid reports whether p is a known priority.
func (p DemoPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// DemoStatus is the progress of a demo.
type DemoStatus string

// Demo statuses.
const (
	DemoPending    DemoStatus = "pending"
	DemoInProgress DemoStatus = "in-progress"
	DemoCompleted  DemoStatus = "completed"
)

// Valid reports whether s is a known demo status.
func (s DemoStatus) Valid() bool {
	return s == DemoPending || s == DemoInProgress || s == DemoCompleted
}

// Demo is a product demonstration, optionally tied to a lead or project.
type Demo struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	LeadID      string       `json:"leadId,omitempty"`
	ProjectID   string       `json:"projectId,omitempty"`
	Priority    DemoPriority `json:"priority"`
	Status      DemoStatus   `json:"status"`
	DueDate     Date         `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// DemoInput carries the editable fields of a demo form.
type DemoInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	LeadID      string       `json:"leadId,omitempty"`
	ProjectID   string       `json:"projectId,omitempty"`
	Priority    DemoPriority `json:"priority"`
	Status      DemoStatus   `json:"status"`
	DueDate     Date         `json:"dueDate"`
}

// Normalize fills defaults for omitted enumerations.
func (in *DemoInput) Normalize() {
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = DemoPending
	}
}

// DemoFilter narrows a demo listing.
type DemoFilter struct {
	Status   DemoStatus
	Priority DemoPriority
}
