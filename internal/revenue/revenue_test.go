package revenue_test

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/revenue"
)

var now = time.Date(2025, time.May, 20, 15, 0, 0, 0, time.UTC)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    revenue.Window
		wantErr bool
	}{
		{"", revenue.WindowAll, false},
		{"all", revenue.WindowAll, false},
		{"quarter", revenue.WindowQuarter, false},
		{"week", "", true},
	}
	for _, tt := range tests {
		got, err := revenue.ParseWindow(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWindow(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseWindow(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuarterBoundary(t *testing.T) {
	// May is in Q2, which starts on April 1st.
	firstDay := domain.NewDate(2025, time.April, 1)
	dayBefore := domain.NewDate(2025, time.March, 31)
	lastYear := domain.NewDate(2024, time.April, 1)

	if !revenue.WindowQuarter.Contains(firstDay, now) {
		t.Error("expected first day of the quarter to be included")
	}
	if revenue.WindowQuarter.Contains(dayBefore, now) {
		t.Error("expected the day before the quarter to be excluded")
	}
	if revenue.WindowQuarter.Contains(lastYear, now) {
		t.Error("expected the same quarter of another year to be excluded")
	}
}

func TestWindowContains(t *testing.T) {
	tests := []struct {
		w      revenue.Window
		closed domain.Date
		want   bool
	}{
		{revenue.WindowAll, domain.NewDate(2001, 1, 1), true},
		{revenue.WindowYear, domain.NewDate(2025, 1, 1), true},
		{revenue.WindowYear, domain.NewDate(2024, 12, 31), false},
		{revenue.WindowMonth, domain.NewDate(2025, 5, 1), true},
		{revenue.WindowMonth, domain.NewDate(2025, 4, 30), false},
	}
	for _, tt := range tests {
		if got := tt.w.Contains(tt.closed, now); got != tt.want {
			t.Errorf("%s.Contains(%s) = %v, want %v", tt.w, tt.closed, got, tt.want)
		}
	}
}

func TestCompanyMonthlyRecurringAndOneTime(t *testing.T) {
	deals := []*domain.Deal{
		{ID: "1", DealValue: 100, PaymentType: domain.PaymentOneTime, Status: domain.DealActive,
			SalesmanName: "jane", SalesmanEmail: "jane@example.com", ClosedDate: domain.NewDate(2025, 1, 10)},
		{ID: "2", DealValue: 50, MonthlyAmount: 10, PaymentType: domain.PaymentMonthly, Status: domain.DealActive,
			SalesmanName: "jane", SalesmanEmail: "jane@example.com", ClosedDate: domain.NewDate(2025, 2, 10)},
	}

	tr := revenue.Summarize(deals, revenue.WindowAll, now)
	if tr.Company.MonthlyRecurring != 10 {
		t.Errorf("MonthlyRecurring = %v, want 10", tr.Company.MonthlyRecurring)
	}
	if tr.Company.OneTimePayments != 100 {
		t.Errorf("OneTimePayments = %v, want 100", tr.Company.OneTimePayments)
	}

	totals := revenue.Total(deals, false)
	if totals.MonthlyRecurring != 10 || totals.OneTimePayments != 100 {
		t.Errorf("Total = %+v, want MRR 10 and one-time 100", totals)
	}
}

func TestSummarizeGroupsAndSorts(t *testing.T) {
	deals := []*domain.Deal{
		{ID: "a", DealValue: 1000, InstallationFee: 200, PaymentType: domain.PaymentOneTime, Status: domain.DealCompleted,
			SalesmanName: "ann", SalesmanEmail: "ann@example.com", ClosedDate: domain.NewDate(2025, 5, 2)},
		{ID: "b", DealValue: 5000, MonthlyAmount: 400, PaymentType: domain.PaymentMonthly, Status: domain.DealActive,
			SalesmanName: "bob", SalesmanEmail: "bob@example.com", ClosedDate: domain.NewDate(2025, 3, 2)},
		{ID: "c", DealValue: 300, MonthlyAmount: 30, PaymentType: domain.PaymentMonthly, Status: domain.DealCancelled,
			SalesmanName: "ann", SalesmanEmail: "ann@example.com", ClosedDate: domain.NewDate(2025, 5, 19)},
		{ID: "orphan", DealValue: 99999, PaymentType: domain.PaymentOneTime, ClosedDate: domain.NewDate(2025, 5, 1)},
	}

	tr := revenue.Summarize(deals, revenue.WindowAll, now)
	if len(tr.Salesmen) != 2 {
		t.Fatalf("expected 2 salesmen, got %d", len(tr.Salesmen))
	}
	if tr.Salesmen[0].Email != "bob@example.com" {
		t.Errorf("expected bob first by total value, got %s", tr.Salesmen[0].Email)
	}

	ann := tr.Salesmen[1]
	if ann.TotalValue != 1300 || ann.DealsCount != 2 {
		t.Errorf("ann totals = %v / %d, want 1300 / 2", ann.TotalValue, ann.DealsCount)
	}
	if ann.OneTimePayments != 1200 {
		t.Errorf("ann one-time = %v, want 1200 with installation", ann.OneTimePayments)
	}
	if ann.MonthlyRecurring != 0 {
		t.Errorf("cancelled monthly deal must not recur, got %v", ann.MonthlyRecurring)
	}
	if ann.ThisMonthValue != 1300 {
		t.Errorf("ann this-month = %v, want 1300", ann.ThisMonthValue)
	}
	if ann.ActiveDeals != 0 {
		t.Errorf("ann active deals = %d, want 0", ann.ActiveDeals)
	}

	if tr.Company.TotalDeals != 3 || tr.Company.ActiveSalesmen != 2 {
		t.Errorf("company = %+v", tr.Company)
	}
	if tr.Company.MonthlyRecurring != 400 {
		t.Errorf("company MRR = %v, want 400", tr.Company.MonthlyRecurring)
	}

	month := revenue.Summarize(deals, revenue.WindowMonth, now)
	if len(month.Salesmen) != 1 || month.Salesmen[0].Email != "ann@example.com" {
		t.Errorf("expected only ann in the month window, got %+v", month.Salesmen)
	}
}

func TestTotalWithInstallation(t *testing.T) {
	deals := []*domain.Deal{
		{DealValue: 100, InstallationFee: 20, PaymentType: domain.PaymentOneTime, Status: domain.DealActive},
		{DealValue: 60, InstallationFee: 5, MonthlyAmount: 6, PaymentType: domain.PaymentMonthly, Status: domain.DealActive},
	}

	with := revenue.Total(deals, true)
	if with.OneTimePayments != 120 {
		t.Errorf("one-time with installation = %v, want 120", with.OneTimePayments)
	}
	if with.InstallationFees != 25 || with.ActiveDeals != 2 || with.TotalRevenue != 160 {
		t.Errorf("unexpected totals %+v", with)
	}

	without := revenue.Total(deals, false)
	if without.OneTimePayments != 100 {
		t.Errorf("one-time without installation = %v, want 100", without.OneTimePayments)
	}
}

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "€0.00"},
		{5, "€5.00"},
		{1234.56, "€1,234.56"},
		{1000000, "€1,000,000.00"},
		{-5, "-€5.00"},
	}
	for _, tt := range tests {
		if got := revenue.FormatEUR(tt.in); got != tt.want {
			t.Errorf("FormatEUR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRevenue(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"€1M", 1_000_000, true},
		{"1.5m", 1_500_000, true},
		{"500k", 500_000, true},
		{"500 K€", 500_000, true},
		{"500k (2m staff)", 5_002_000, true},
		{"2M, 300k", 2_000, true},
		{"1,250,000", 1_250_000, true},
		{"€ 2 300", 2300, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"unknown", 0, false},
	}
	for _, tt := range tests {
		got, ok := revenue.ParseRevenue(tt.in)
		if ok != tt.wantOK || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseRevenue(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormatRevenue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"500k", "€500,000"},
		{"€1M", "€1,000,000"},
		{"1234.5", "€1,234.5"},
		{"tbd", ""},
	}
	for _, tt := range tests {
		if got := revenue.FormatRevenue(tt.in); got != tt.want {
			t.Errorf("FormatRevenue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildDashboard(t *testing.T) {
	in := revenue.DashboardInput{
		Leads: []*domain.Lead{{ID: "l1"}, {ID: "l2"}, {ID: "l3"}, {ID: "l4"}},
		Projects: []*domain.Project{{ID: "p1"}},
		Demos: []*domain.Demo{
			{ID: "late", Status: domain.DemoPending, DueDate: domain.NewDate(2025, 6, 1)},
			{ID: "done", Status: domain.DemoCompleted, DueDate: domain.NewDate(2025, 1, 1)},
			{ID: "undated", Status: domain.DemoPending},
			{ID: "soon", Status: domain.DemoInProgress, DueDate: domain.NewDate(2025, 5, 21)},
		},
		Deals: []*domain.Deal{
			{DealValue: 100, InstallationFee: 10, PaymentType: domain.PaymentOneTime, Status: domain.DealActive},
		},
	}

	d := revenue.BuildDashboard(in)
	if d.TotalLeads != 4 || len(d.RecentLeads) != 3 {
		t.Errorf("leads = %d / %d recent", d.TotalLeads, len(d.RecentLeads))
	}
	if d.CompletedDemos != 1 {
		t.Errorf("completed demos = %d, want 1", d.CompletedDemos)
	}
	if len(d.UpcomingDemos) != 3 || d.UpcomingDemos[0].ID != "soon" || d.UpcomingDemos[2].ID != "undated" {
		t.Errorf("unexpected upcoming demos order")
	}
	if d.OneTimeRevenue != 100 || d.InstallationFees != 10 {
		t.Errorf("one-time = %v, installation = %v", d.OneTimeRevenue, d.InstallationFees)
	}
}

func TestRenderChart(t *testing.T) {
	tr := revenue.Summarize([]*domain.Deal{
		{DealValue: 100, PaymentType: domain.PaymentOneTime, SalesmanName: "ann", SalesmanEmail: "ann@example.com"},
	}, revenue.WindowAll, now)

	png, err := revenue.RenderChart(tr)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}

	empty, err := revenue.RenderChart(revenue.Treasury{Window: revenue.WindowMonth})
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if len(empty) == 0 {
		t.Error("expected output for an empty treasury")
	}
}
