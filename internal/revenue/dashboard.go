package revenue

import (
	"sort"

	"github.com/envaire/salesdesk/internal/domain"
)

// Recent-item limits on the dashboard.
const (
	recentLeads    = 3
	recentProjects = 3
	upcomingDemos  = 4
	recentDeals    = 3
)

// DashboardInput is the data the dashboard is built from. Slices are
// expected newest first, as the stores return them.
type DashboardInput struct {
	Leads    []*domain.Lead
	Projects []*domain.Project
	Demos    []*domain.Demo
	Deals    []*domain.Deal
}

// Dashboard is the actor's landing summary.
type Dashboard struct {
	TotalLeads       int               `json:"totalLeads"`
	TotalProjects    int               `json:"totalProjects"`
	TotalDemos       int               `json:"totalDemos"`
	CompletedDemos   int               `json:"completedDemos"`
	TotalDeals       int               `json:"totalDeals"`
	ActiveDeals      int               `json:"activeDeals"`
	MonthlyRecurring float64           `json:"monthlyRecurring"`
	TotalRevenue     float64           `json:"totalRevenue"`
	OneTimeRevenue   float64           `json:"oneTimeRevenue"`
	InstallationFees float64           `json:"installationFees"`
	RecentLeads      []*domain.Lead    `json:"recentLeads"`
	RecentProjects   []*domain.Project `json:"recentProjects"`
	UpcomingDemos    []*domain.Demo    `json:"upcomingDemos"`
	RecentDeals      []*domain.Deal    `json:"recentDeals"`
}

// BuildDashboard computes the dashboard. One-time revenue leaves out
// installation fees.
func BuildDashboard(in DashboardInput) Dashboard {
	totals := Total(in.Deals, false)

	d := Dashboard{
		TotalLeads:       len(in.Leads),
		TotalProjects:    len(in.Projects),
		TotalDemos:       len(in.Demos),
		TotalDeals:       totals.DealsCount,
		ActiveDeals:      totals.ActiveDeals,
		MonthlyRecurring: totals.MonthlyRecurring,
		TotalRevenue:     totals.TotalRevenue,
		OneTimeRevenue:   totals.OneTimePayments,
		InstallationFees: totals.InstallationFees,
		RecentLeads:      head(in.Leads, recentLeads),
		RecentProjects:   head(in.Projects, recentProjects),
		RecentDeals:      head(in.Deals, recentDeals),
	}

	open := make([]*domain.Demo, 0, len(in.Demos))
	for _, demo := range in.Demos {
		if demo.Status == domain.DemoCompleted {
			d.CompletedDemos++
			continue
		}
		open = append(open, demo)
	}
	sort.SliceStable(open, func(i, j int) bool {
		return dueBefore(open[i].DueDate, open[j].DueDate)
	})
	d.UpcomingDemos = head(open, upcomingDemos)

	return d
}

// dueBefore orders dated demos by due date and undated ones last.
func dueBefore(a, b domain.Date) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	}
	return a.Before(b.Time)
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}

