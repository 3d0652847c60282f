package domain

import (
	"strings"
	"time"
)

// LeadStatus is the pipeline stage of a lead.
type LeadStatus string

// Lead pipeline stages.
const (
	LeadProspect    LeadStatus = "prospect"
	LeadQualified   LeadStatus = "qualified"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadClosedWon   LeadStatus = "closed-won"
	LeadClosedLost  LeadStatus = "closed-lost"
)

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadProspect, LeadQualified, LeadProposal, LeadNegotiation, LeadClosedWon, LeadClosedLost:
		return true
	}
	return false
}

// ActiveLeadStatuses are the stages the timer engine watches. Closed leads
// can still carry a scheduled call but are never surfaced as overdue.
var ActiveLeadStatuses = []LeadStatus{LeadProspect, LeadQualified, LeadProposal, LeadNegotiation}

// CallStatus records the outcome of the last call attempt.
type CallStatus string

// Call outcomes.
const (
	CallNotCalled   CallStatus = "not_called"
	CallAnswered    CallStatus = "answered"
	CallNoResponse  CallStatus = "no_response"
	CallVoicemail   CallStatus = "voicemail"
	CallBusy        CallStatus = "busy"
	CallWrongNumber CallStatus = "wrong_number"
)

// Valid reports whether s is a known call status.
func (s CallStatus) Valid() bool {
	switch s {
	case CallNotCalled, CallAnswered, CallNoResponse, CallVoicemail, CallBusy, CallWrongNumber:
		return true
	}
	return false
}

// Lead is a prospective customer company and its contact person.
type Lead struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Company       string     `json:"company"`
	Position      string     `json:"position"`
	Status        LeadStatus `json:"status"`
	CallStatus    CallStatus `json:"call_status"`
	Revenue       string     `json:"revenue"`
	Notes         string     `json:"notes"`
	Industry      string     `json:"industry"`
	Website       string     `json:"website"`
	CEO           string     `json:"ceo"`
	WhosePhone    string     `json:"whose_phone"`
	GoSkip        string     `json:"go_skip"`
	LastContact   time.Time  `json:"lastContact"`
	ScheduledCall *time.Time `json:"scheduled_call,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// LeadInput carries the editable fields of a lead form.
type LeadInput struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Company       string     `json:"company"`
	Position      string     `json:"position"`
	Status        LeadStatus `json:"status"`
	CallStatus    CallStatus `json:"call_status"`
	Revenue       string     `json:"revenue"`
	Notes         string     `json:"notes"`
	Industry      string     `json:"industry"`
	Website       string     `json:"website"`
	CEO           string     `json:"ceo"`
	WhosePhone    string     `json:"whose_phone"`
	GoSkip        string     `json:"go_skip"`
	ScheduledCall *time.Time `json:"scheduled_call,omitempty"`
}

// Normalize fills defaults for omitted enumerations.
func (in *LeadInput) Normalize() {
	if in.Status == "" {
		in.Status = LeadProspect
	}
	if in.CallStatus == "" {
		in.CallStatus = CallNotCalled
	}
}

// LeadSort selects the ordering of a lead listing.
type LeadSort string

// Lead orderings.
const (
	LeadSortCreated LeadSort = "created"
	LeadSortCompany LeadSort = "company"
	LeadSortRevenue LeadSort = "revenue"
	LeadSortStatus  LeadSort = "status"
)

// LeadFilter narrows a lead listing. Empty fields match everything.
type LeadFilter struct {
	Status     LeadStatus
	CallStatus CallStatus
	Industry   string
	Query      string
	Sort       LeadSort
}

// CompanyKey is the normalized form used for company uniqueness: trimmed
// and lower-cased.
func CompanyKey(company string) string {
	return strings.ToLower(strings.TrimSpace(company))
}
