package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

type leadDef struct {
	name       string
	company    string
	email      string
	status     domain.LeadStatus
	callStatus domain.CallStatus
	revenue    string
	callIn     time.Duration // scheduled call offset from now, 0 for none
}

var defaultLeads = []leadDef{
	{name: "Maria Virtanen", company: "Nordic Staffing Oy", email: "maria@nordicstaffing.example", revenue: "4 500 000", callIn: 3 * time.Hour},
	{name: "Jukka Lehtinen", company: "Lehtinen Rekry", email: "jukka@lehtinen.example", revenue: "1 200 000", callIn: -2 * time.Hour},
	{name: "Anna Korhonen", company: "Korhonen Henkilöstö", email: "anna@korhonen.example", status: domain.LeadQualified, callStatus: domain.CallAnswered, revenue: "850 000"},
	{name: "Pekka Mäkinen", company: "Mäkinen Workforce", status: domain.LeadProposal, callStatus: domain.CallVoicemail},
	{name: "Sari Nieminen", company: "Nieminen Talent", email: "sari@nieminen.example", status: domain.LeadClosedWon, callStatus: domain.CallAnswered, revenue: "2 300 000"},
}

// Leads inserts the demo leads for the demo actor and returns their IDs in
// definition order.
func Leads(ctx context.Context, leads store.LeadStore, now time.Time) ([]string, error) {
	ids := make([]string, 0, len(defaultLeads))
	for _, ld := range defaultLeads {
		in := domain.LeadInput{
			Name:       ld.name,
			Email:      ld.email,
			Company:    ld.company,
			Status:     ld.status,
			CallStatus: ld.callStatus,
			Revenue:    ld.revenue,
			Industry:   "HENKILÖSTÖVUOKRAUS",
		}
		if ld.callIn != 0 {
			at := now.Add(ld.callIn)
			in.ScheduledCall = &at
		}

		l, err := leads.Create(ctx, DemoActorID, in)
		if err != nil {
			return nil, fmt.Errorf("insert lead %s: %w", ld.company, err)
		}
		ids = append(ids, l.ID)
	}
	return ids, nil
}
