package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/envaire/salesdesk/internal/domain"
	"github.com/envaire/salesdesk/internal/store"
)

// Pipeline inserts a project with a status update and two demos, the first
// linked to the third seeded lead when present.
func Pipeline(ctx context.Context, s *store.Store, leadIDs []string, now time.Time) error {
	p, err := s.Projects.Create(ctx, DemoActorID, domain.ProjectInput{
		Title:             "Recruiting platform rollout",
		Company:           "Korhonen Henkilöstö",
		Description:       "Pilot for two regional offices",
		ExpectedCloseDate: dateIn(now, 30),
	})
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	if _, err := s.StatusUpdates.Create(ctx, DemoActorID, domain.TargetProject, p.ID,
		"Kickoff held, waiting for the signed pilot scope."); err != nil {
		return fmt.Errorf("insert project update: %w", err)
	}

	var leadID string
	if len(leadIDs) > 2 {
		leadID = leadIDs[2]
	}
	demos := []domain.DemoInput{
		{Title: "Product walkthrough", LeadID: leadID, ProjectID: p.ID, Priority: domain.PriorityHigh, DueDate: dateIn(now, 3)},
		{Title: "Reporting deep dive", Status: domain.DemoInProgress, DueDate: dateIn(now, 10)},
	}
	for _, in := range demos {
		if _, err := s.Demos.Create(ctx, DemoActorID, in); err != nil {
			return fmt.Errorf("insert demo %s: %w", in.Title, err)
		}
	}
	return nil
}

func dateIn(now time.Time, days int) domain.Date {
	d := now.AddDate(0, 0, days)
	return domain.NewDate(d.Year(), d.Month(), d.Day())
}
