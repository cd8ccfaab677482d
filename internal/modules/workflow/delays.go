package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

// NotifyOverdue scans active projects for stages past their estimated end
// date and notifies the responsible role plus superadmins. Stage status is
// not mutated; delay is always derived from end_date, so at most one stage
// per project stays in_progress.
func (s *Service) NotifyOverdue(ctx context.Context) error {
	projects, err := s.projects.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for i := range projects {
		p := &projects[i]
		if p.Status == domain.ProjectCompleted || p.Status == domain.ProjectDraft {
			continue
		}

		key, ok := domain.ActiveStageKey(p.Status)
		if !ok {
			continue
		}
		stage := p.Stage(key)
		if stage == nil || stage.EndDate == nil || !stage.EndDate.Before(now) {
			continue
		}

		daysOver := int(now.Sub(*stage.EndDate).Hours() / 24)
		role, _ := domain.ActiveStageRole(p.Status)
		msg := fmt.Sprintf("Stage %s of project %q is %d day(s) past its estimated end date.", key, p.Name, daysOver)

		if err := s.notifs.NotifyRole(ctx, role, p.ID, msg); err != nil {
			log.Printf("overdue notification failed project=%d role=%s: %v", p.ID, role, err)
		}
		if err := s.notifs.NotifyRole(ctx, domain.RoleSuperadmin, p.ID, msg); err != nil {
			log.Printf("overdue notification failed project=%d role=superadmin: %v", p.ID, err)
		}
	}

	return nil
}
