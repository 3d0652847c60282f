package revenue

import (
	"log/slog"
	"sort"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
)

// SalesmanStats is the rollup of one salesman's deals.
type SalesmanStats struct {
	UserID           string         `json:"user_id"`
	Email            string         `json:"email"`
	Name             string         `json:"name"`
	TotalValue       float64        `json:"totalValue"`
	MonthlyRecurring float64        `json:"monthlyRecurring"`
	OneTimePayments  float64        `json:"oneTimePayments"`
	InstallationFees float64        `json:"installationFees"`
	ActiveDeals      int            `json:"activeDeals"`
	DealsCount       int            `json:"dealsCount"`
	ThisMonthValue   float64        `json:"thisMonthValue"`
	Deals            []*domain.Deal `json:"deals"`
}

// CompanyStats sums the salesman rollups.
type CompanyStats struct {
	TotalValue       float64 `json:"totalValue"`
	MonthlyRecurring float64 `json:"monthlyRecurring"`
	OneTimePayments  float64 `json:"oneTimePayments"`
	InstallationFees float64 `json:"installationFees"`
	ActiveDeals      int     `json:"activeDeals"`
	TotalDeals       int     `json:"totalDeals"`
	ActiveSalesmen   int     `json:"activeSalesmen"`
	ThisMonthRevenue float64 `json:"thisMonthRevenue"`
}

// Treasury is the admin revenue view for one window.
type Treasury struct {
	Window   Window          `json:"window"`
	Company  CompanyStats    `json:"company"`
	Salesmen []SalesmanStats `json:"salesmen"`
}

// Summarize groups the deals inside w by salesman email and rolls them up.
// Deals without a salesman name or email are left out with a warning. One-time
// totals include installation fees. The this-month value counts deals closed
// in now's calendar month whatever the window.
func Summarize(deals []*domain.Deal, w Window, now time.Time) Treasury {
	bySalesman := make(map[string]*SalesmanStats)
	var order []string

	for _, d := range Filter(deals, w, now) {
		if d.SalesmanName == "" || d.SalesmanEmail == "" {
			slog.Warn("deal has no salesman, skipping", "deal_id", d.ID, "title", d.Title)
			continue
		}

		s, ok := bySalesman[d.SalesmanEmail]
		if !ok {
			s = &SalesmanStats{UserID: d.UserID, Email: d.SalesmanEmail, Name: d.SalesmanName, Deals: []*domain.Deal{}}
			bySalesman[d.SalesmanEmail] = s
			order = append(order, d.SalesmanEmail)
		}

		s.TotalValue += d.DealValue
		s.DealsCount++
		s.InstallationFees += d.InstallationFee
		switch {
		case d.PaymentType == domain.PaymentOneTime:
			s.OneTimePayments += d.DealValue + d.InstallationFee
		case d.PaymentType == domain.PaymentMonthly && d.Status == domain.DealActive:
			s.MonthlyRecurring += d.MonthlyAmount
		}
		if d.Status == domain.DealActive {
			s.ActiveDeals++
		}
		if sameMonth(d.ClosedDate, now) {
			s.ThisMonthValue += d.DealValue
		}
		s.Deals = append(s.Deals, d)
	}

	t := Treasury{Window: w, Salesmen: make([]SalesmanStats, 0, len(order))}
	for _, email := range order {
		s := bySalesman[email]
		t.Salesmen = append(t.Salesmen, *s)

		t.Company.TotalValue += s.TotalValue
		t.Company.MonthlyRecurring += s.MonthlyRecurring
		t.Company.OneTimePayments += s.OneTimePayments
		t.Company.InstallationFees += s.InstallationFees
		t.Company.ActiveDeals += s.ActiveDeals
		t.Company.TotalDeals += s.DealsCount
		t.Company.ThisMonthRevenue += s.ThisMonthValue
	}
	t.Company.ActiveSalesmen = len(t.Salesmen)

	sort.SliceStable(t.Salesmen, func(i, j int) bool {
		return t.Salesmen[i].TotalValue > t.Salesmen[j].TotalValue
	})
	return t
}

// Totals are the rollups shown above a deal list or on the dashboard.
type Totals struct {
	MonthlyRecurring float64 `json:"monthlyRecurring"`
	TotalRevenue     float64 `json:"totalRevenue"`
	OneTimePayments  float64 `json:"oneTimePayments"`
	InstallationFees float64 `json:"installationFees"`
	ActiveDeals      int     `json:"activeDeals"`
	DealsCount       int     `json:"dealsCount"`
}

// Total rolls up deals without grouping. withInstallation adds installation
// fees to the one-time total, as the deal list does.
func Total(deals []*domain.Deal, withInstallation bool) Totals {
	var t Totals
	for _, d := range deals {
		t.DealsCount++
		t.TotalRevenue += d.DealValue
		t.InstallationFees += d.InstallationFee
		if d.PaymentType == domain.PaymentOneTime {
			t.OneTimePayments += d.DealValue
			if withInstallation {
				t.OneTimePayments += d.InstallationFee
			}
		}
		if d.PaymentType == domain.PaymentMonthly && d.Status == domain.DealActive {
			t.MonthlyRecurring += d.MonthlyAmount
		}
		if d.Status == domain.DealActive {
			t.ActiveDeals++
		}
	}
	return t
}
