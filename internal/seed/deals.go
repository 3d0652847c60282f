package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

// Deals inserts a one-time and a monthly deal closed this month.
func Deals(ctx context.Context, deals store.DealStore, now time.Time) error {
	closed := dateIn(now, 0)
	defs := []domain.DealInput{
		{
			Title:           "Nieminen Talent license",
			Company:         "Nieminen Talent",
			DealValue:       12000,
			PaymentType:     domain.PaymentOneTime,
			InstallationFee: 1500,
			ClosedDate:      closed,
		},
		{
			Title:                "Korhonen subscription",
			Company:              "Korhonen Henkilöstö",
			PaymentType:          domain.PaymentMonthly,
			MonthlyAmount:        890,
			ContractLengthMonths: 24,
			ClosedDate:           closed,
		},
	}
	for _, in := range defs {
		in.SalesmanName = "sales"
		in.SalesmanEmail = DemoActorEmail
		if _, err := deals.Create(ctx, DemoActorID, in); err != nil {
			return fmt.Errorf("insert deal %s: %w", in.Title, err)
		}
	}
	return nil
}
