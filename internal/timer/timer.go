// Package timer computes lead SLA countdowns and scheduled-call lateness.
//
// A new lead must be worked within three days of creation while it is still
// a prospect. A scheduled callback that has passed is overdue whatever the
// lead's pipeline stage, and it takes display priority over the SLA.
package timer

import (
	"fmt"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
)

const (
	// SLA is how long a prospect may wait before it is overdue.
	SLA = 3 * 24 * time.Hour

	// SevereAfter is the overdue age from which a lead is severely overdue.
	SevereAfter = 14 * 24 * time.Hour

	day = 24 * time.Hour
)

// Severity is the urgency color of a lead timer.
type Severity string

// Severities.
const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Countdown is a duration floored to whole days, hours and minutes.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Decompose floors a non-negative duration into a Countdown. Negative
// durations are taken by magnitude.
func Decompose(d time.Duration) Countdown {
	if d < 0 {
		d = -d
	}
	return Countdown{
		Days:    int(d / day),
		Hours:   int(d % day / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
	}
}

// Duration rebuilds the duration the Countdown represents.
func (c Countdown) Duration() time.Duration {
	return time.Duration(c.Days)*day + time.Duration(c.Hours)*time.Hour + time.Duration(c.Minutes)*time.Minute
}

// String renders "1d 2h 3m", dropping leading zero units: "2h 0m", "5m".
func (c Countdown) String() string {
	switch {
	case c.Days > 0:
		return fmt.Sprintf("%dd %dh %dm", c.Days, c.Hours, c.Minutes)
	case c.Hours > 0:
		return fmt.Sprintf("%dh %dm", c.Hours, c.Minutes)
	default:
		return fmt.Sprintf("%dm", c.Minutes)
	}
}

// LeadTimer is the timer state of one lead at a point in time.
type LeadTimer struct {
	Lead *domain.Lead `json:"lead"`

	// Remaining is time left before the SLA deadline, or time past it when
	// IsOverdue is set.
	Remaining       Countdown `json:"remaining"`
	IsOverdue       bool      `json:"isOverdue"`
	IsLightOverdue  bool      `json:"isLightOverdue"`
	IsSevereOverdue bool      `json:"isSevereOverdue"`
	OverdueDays     int       `json:"overdueDays"`

	ScheduledCallOverdue   bool      `json:"scheduledCallOverdue"`
	ScheduledCallOverdueBy Countdown `json:"scheduledCallOverdueBy"`

	Severity Severity `json:"severity"`
	Display  string   `json:"display"`
}

// Compute returns the timer of l at now.
func Compute(l *domain.Lead, now time.Time) LeadTimer {
	t := LeadTimer{Lead: l}

	remaining := l.CreatedAt.Add(SLA).Sub(now)
	t.Remaining = Decompose(remaining)
	if remaining <= 0 {
		t.IsOverdue = true
		t.OverdueDays = t.Remaining.Days
		t.IsSevereOverdue = t.Remaining.Duration() >= SevereAfter
		t.IsLightOverdue = !t.IsSevereOverdue
	}

	if l.ScheduledCall != nil && l.ScheduledCall.Before(now) {
		t.ScheduledCallOverdue = true
		t.ScheduledCallOverdueBy = Decompose(now.Sub(*l.ScheduledCall))
	}

	t.Severity = severity(t)
	t.Display = Format(t)
	return t
}

// InOverdueSet reports whether the lead belongs in the overdue notification
// list: a prospect past its SLA, or any lead with a missed callback.
func (t LeadTimer) InOverdueSet() bool {
	if t.ScheduledCallOverdue {
		return true
	}
	return t.isProspect() && (t.IsLightOverdue || t.IsSevereOverdue)
}

func (t LeadTimer) isProspect() bool {
	return t.Lead != nil && t.Lead.Status == domain.LeadProspect
}

func severity(t LeadTimer) Severity {
	switch {
	case t.ScheduledCallOverdue:
		return SeverityCritical
	case !t.isProspect():
		return SeverityNormal
	case t.IsSevereOverdue:
		return SeverityCritical
	case t.IsLightOverdue:
		return SeverityWarning
	}
	return SeverityNormal
}

// Format renders a timer for display. A missed callback reads
// "SC: 1d 2h 3m overdue"; otherwise non-prospects read "Processed" and
// prospects show the SLA countdown, "2h 5m overdue" or "1d 4h 0m left".
func Format(t LeadTimer) string {
	if t.ScheduledCallOverdue {
		return "SC: " + t.ScheduledCallOverdueBy.String() + " overdue"
	}
	if !t.isProspect() {
		return "Processed"
	}
	if t.IsOverdue {
		return t.Remaining.String() + " overdue"
	}
	return t.Remaining.String() + " left"
}

// Snapshot is the evaluated timer state of a set of leads.
type Snapshot struct {
	Timers       []LeadTimer `json:"timers"`
	Overdue      []LeadTimer `json:"overdue"`
	Total        int         `json:"total"`
	OverdueCount int         `json:"overdueCount"`
	EvaluatedAt  time.Time   `json:"evaluatedAt"`
}

// Evaluate computes every lead's timer and collects the overdue ones, in
// input order.
func Evaluate(leads []*domain.Lead, now time.Time) Snapshot {
	s := Snapshot{
		Timers:      make([]LeadTimer, 0, len(leads)),
		Overdue:     []LeadTimer{},
		EvaluatedAt: now,
	}
	for _, l := range leads {
		t := Compute(l, now)
		s.Timers = append(s.Timers, t)
		if t.InOverdueSet() {
			s.Overdue = append(s.Overdue, t)
		}
	}
	s.Total = len(s.Timers)
	s.OverdueCount = len(s.Overdue)
	return s
}

// CountOverdue returns how many leads are in the overdue set at now.
func CountOverdue(leads []*domain.Lead, now time.Time) int {
	n := 0
	for _, l := range leads {
		if Compute(l, now).InOverdueSet() {
			n++
		}
	}
	return n
}
