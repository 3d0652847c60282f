// Package revenue computes deal rollups for the treasury, dashboard and deal
// list views and formats money for display.
package revenue

import (
	"fmt"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
)

// Window restricts a rollup to deals closed in a calendar period containing
// now.
type Window string

// Time windows.
const (
	WindowAll     Window = "all"
	WindowYear    Window = "year"
	WindowQuarter Window = "quarter"
	WindowMonth   Window = "month"
)

// ParseWindow parses a window name. An empty string means WindowAll.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case "":
		return WindowAll, nil
	case WindowAll, WindowYear, WindowQuarter, WindowMonth:
		return w, nil
	}
	return "", fmt.Errorf("invalid window %q: must be one of all, year, quarter, month", s)
}

// Contains reports whether a deal closed on closed falls inside w relative
// to now.
func (w Window) Contains(closed domain.Date, now time.Time) bool {
	switch w {
	case WindowYear:
		return closed.Year() == now.Year()
	case WindowQuarter:
		return closed.Year() == now.Year() && quarter(closed.Month()) == quarter(now.Month())
	case WindowMonth:
		return sameMonth(closed, now)
	default:
		return true
	}
}

// Filter returns the deals inside w, keeping their order.
func Filter(deals []*domain.Deal, w Window, now time.Time) []*domain.Deal {
	if w == WindowAll || w == "" {
		return deals
	}
	out := make([]*domain.Deal, 0, len(deals))
	for _, d := range deals {
		if w.Contains(d.ClosedDate, now) {
			out = append(out, d)
		}
	}
	return out
}

func quarter(m time.Month) int {
	return (int(m) - 1) / 3
}

func sameMonth(closed domain.Date, now time.Time) bool {
	return closed.Year() == now.Year() && closed.Month() == now.Month()
}
