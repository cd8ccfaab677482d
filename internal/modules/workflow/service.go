package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

// Service is the workflow engine. It owns the project state machine: stage
// estimation, gated advancement, materials confirmation and early
// completion. All mutations go through status-guarded repository updates so
// concurrent writers cannot both apply a transition.
type Service struct {
	projects ProjectRepository
	users    UserDirectory
	gates    *GateChecker
	notifs   NotificationSender
}

func NewService(projects ProjectRepository, users UserDirectory, gates *GateChecker, notifs NotificationSender) *Service {
	return &Service{
		projects: projects,
		users:    users,
		gates:    gates,
		notifs:   notifs,
	}
}

func (s *Service) Create(ctx context.Context, actor Actor, req CreateProjectRequest) (*domain.Project, error) {
	if actor.Role != domain.RoleDesigner {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	end := now.Add(time.Duration(req.DesignEstimatedDays) * 24 * time.Hour)
	responsible := actor.ID

	p := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		CreatedBy:   actor.ID,
		Status:      domain.ProjectDesign,
		Stages: []domain.ProjectStage{
			{
				Stage:             domain.StageDesign,
				Status:            domain.StageInProgress,
				EstimatedDays:     req.DesignEstimatedDays,
				StartDate:         &now,
				EndDate:           &end,
				ResponsibleUserID: &responsible,
			},
			{Stage: domain.StageValidation, Status: domain.StagePending},
			{Stage: domain.StagePurchasing, Status: domain.StagePending},
			{Stage: domain.StageWarehouse, Status: domain.StagePending},
			{Stage: domain.StageManufacturing, Status: domain.StagePending},
		},
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns projects visible to the actor. Designers only see projects
// they created; every other role sees everything.
func (s *Service) List(ctx context.Context, actor Actor, status string) ([]ProjectWithCreator, error) {
	filter := repository.ProjectFilter{Status: status}
	if actor.Role == domain.RoleDesigner {
		id := actor.ID
		filter.CreatedBy = &id
	}

	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	if users, err := s.users.GetAll(ctx); err == nil {
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	out := make([]ProjectWithCreator, 0, len(projects))
	for _, p := range projects {
		name := names[p.CreatedBy]
		if name == "" {
			name = "unknown"
		}
		out = append(out, ProjectWithCreator{Project: p, CreatedByName: name})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// AdvanceStage closes the active stage and opens the next one. The gate
// check runs against the stage being left; the next stage opens without an
// estimate, which the responsible role fills in via SetMyEstimate.
func (s *Service) AdvanceStage(ctx context.Context, projectID int64, actor Actor) (*domain.Project, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.gates.CanAdvance(ctx, p); err != nil {
		return nil, err
	}

	t, ok := domain.Transition(p.Status)
	if !ok {
		if p.Status == domain.ProjectCompleted || p.Status == domain.ProjectDraft {
			return nil, fmt.Errorf("%w: project cannot advance from %s", ErrInvalidState, p.Status)
		}
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	fields := map[string]any{"status": t.NextStatus}
	stages := []repository.StageUpdate{
		{
			Stage: t.CurrentStage,
			Fields: map[string]any{
				"status":   domain.StageCompleted,
				"end_date": now,
			},
		},
	}

	if t.NextStage != "" {
		stages = append(stages, repository.StageUpdate{
			Stage: t.NextStage,
			Fields: map[string]any{
				"status":         domain.StageInProgress,
				"start_date":     now,
				"estimated_days": 0,
			},
		})
	} else {
		fields["completed_at"] = now
	}

	if err := s.projects.UpdateGuarded(ctx, p.ID, p.Status, fields, stages, 0, 0); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if t.NextRole != "" {
		msg := fmt.Sprintf("Project %q advanced to %s. Please set your estimated days.", p.Name, t.NextStatus)
		if err := s.notifs.NotifyRole(ctx, t.NextRole, p.ID, msg); err != nil {
			log.Printf("advance notification failed project=%d role=%s: %v", p.ID, t.NextRole, err)
		}
	}

	return s.Get(ctx, projectID)
}

// SetMyEstimate lets the role owning the active stage define its estimated
// duration. The end date is derived from the stage start.
func (s *Service) SetMyEstimate(ctx context.Context, projectID int64, actor Actor, estimatedDays int) (*domain.Project, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	required, ok := domain.ActiveStageRole(p.Status)
	if !ok {
		return nil, fmt.Errorf("%w: project status %s does not accept estimates", ErrInvalidState, p.Status)
	}
	if actor.Role != required && !actor.IsSuperadmin() {
		return nil, ErrForbidden
	}

	key, _ := domain.ActiveStageKey(p.Status)
	stage := p.Stage(key)
	if stage == nil || stage.StartDate == nil {
		return nil, fmt.Errorf("%w: stage has not started", ErrInvalidState)
	}

	now := time.Now().UTC()
	end := stage.StartDate.Add(time.Duration(estimatedDays) * 24 * time.Hour)

	err = s.projects.UpdateGuarded(ctx, p.ID, p.Status, nil, []repository.StageUpdate{
		{
			Stage: key,
			Fields: map[string]any{
				"estimated_days": estimatedDays,
				"end_date":       end,
				"estimated_by":   actor.ID,
				"estimated_at":   now,
			},
		},
	}, 0, 0)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.Get(ctx, projectID)
}

// UpdateStageDuration is the administrative override of any started stage's
// estimate. Restricted to superadmin.
func (s *Service) UpdateStageDuration(ctx context.Context, projectID int64, actor Actor, stageName string, newDays int) (*domain.Project, error) {
	if !actor.IsSuperadmin() {
		return nil, ErrForbidden
	}

	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	key := domain.StageKey(stageName)
	if !key.Valid() {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidState, stageName)
	}

	stage := p.Stage(key)
	if stage == nil || stage.StartDate == nil {
		return nil, fmt.Errorf("%w: stage has not started", ErrInvalidState)
	}

	end := stage.StartDate.Add(time.Duration(newDays) * 24 * time.Hour)

	err = s.projects.UpdateGuarded(ctx, p.ID, p.Status, nil, []repository.StageUpdate{
		{
			Stage: key,
			Fields: map[string]any{
				"estimated_days": newDays,
				"end_date":       end,
			},
		},
	}, 0, 0)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.Get(ctx, projectID)
}

// ConfirmMaterials records the warehouse confirmation that all materials are
// ready. It is the only way the warehouse gate becomes satisfiable.
func (s *Service) ConfirmMaterials(ctx context.Context, projectID int64, actor Actor) (*domain.Project, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if p.Status != domain.ProjectWarehouse {
		return nil, fmt.Errorf("%w: project is not in warehouse stage", ErrInvalidState)
	}
	if actor.Role != domain.RoleWarehouse && !actor.IsSuperadmin() {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	err = s.projects.UpdateGuarded(ctx, p.ID, p.Status, nil, []repository.StageUpdate{
		{
			Stage: domain.StageWarehouse,
			Fields: map[string]any{
				"materials_confirmed":    true,
				"materials_confirmed_by": actor.ID,
				"materials_confirmed_at": now,
			},
		},
	}, 0, 0)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return s.Get(ctx, projectID)
}

// CompleteEarly closes the active stage ahead of schedule, awards stars to
// the actor by the reward thresholds, and either advances the project or,
// on the terminal stage, completes it.
func (s *Service) CompleteEarly(ctx context.Context, projectID int64, actor Actor) (*CompleteEarlyResult, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	required, ok := domain.ActiveStageRole(p.Status)
	if !ok {
		return nil, fmt.Errorf("%w: project is not in a completable stage", ErrInvalidState)
	}
	if actor.Role != required && !actor.IsSuperadmin() {
		return nil, ErrForbidden
	}

	key, _ := domain.ActiveStageKey(p.Status)
	stage := p.Stage(key)
	if stage == nil || stage.StartDate == nil {
		return nil, fmt.Errorf("%w: stage has not started", ErrInvalidState)
	}

	now := time.Now().UTC()
	reward := ComputeReward(stage.EndDate, now)

	stages := []repository.StageUpdate{
		{
			Stage: key,
			Fields: map[string]any{
				"status":          domain.StageCompleted,
				"end_date":        now,
				"actual_days":     int(now.Sub(*stage.StartDate).Hours() / 24),
				"completed_early": reward.IsEarly,
				"days_early":      reward.DaysEarly,
			},
		},
	}

	t, ok := domain.Transition(p.Status)
	if !ok {
		return nil, ErrInvalidTransition
	}

	fields := map[string]any{"status": t.NextStatus}
	terminal := t.NextStage == ""
	if terminal {
		fields["completed_at"] = now
		fields["completed_early"] = reward.IsEarly
	} else {
		stages = append(stages, repository.StageUpdate{
			Stage: t.NextStage,
			Fields: map[string]any{
				"status":         domain.StageInProgress,
				"start_date":     now,
				"estimated_days": 0,
			},
		})
	}

	if err := s.projects.UpdateGuarded(ctx, p.ID, p.Status, fields, stages, actor.ID, reward.Stars); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.notifyCompletion(ctx, p, actor, key, terminal, reward)

	updated, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &CompleteEarlyResult{
		Project:     updated,
		StarsEarned: reward.Stars,
		DaysEarly:   reward.DaysEarly,
		IsEarly:     reward.IsEarly,
	}, nil
}

func (s *Service) notifyCompletion(ctx context.Context, p *domain.Project, actor Actor, key domain.StageKey, terminal bool, reward Reward) {
	actorName := "someone"
	if u, err := s.users.GetByID(ctx, actor.ID); err == nil {
		actorName = u.Name
	}

	if terminal {
		msg := fmt.Sprintf("Project %q has been completed.", p.Name)
		if reward.IsEarly {
			msg = fmt.Sprintf("Project %q has been completed %d days early. %s earned %d stars.",
				p.Name, reward.DaysEarly, actorName, reward.Stars)
		}
		if err := s.notifs.NotifyRole(ctx, domain.RoleSuperadmin, p.ID, msg); err != nil {
			log.Printf("completion notification failed project=%d role=superadmin: %v", p.ID, err)
		}
		return
	}

	t, _ := domain.Transition(p.Status)
	msg := fmt.Sprintf("Project %q advanced to your stage. Please set your estimated days.", p.Name)
	if reward.IsEarly {
		msg = fmt.Sprintf("Project %q advanced to your stage (previous stage finished %d days early). Please set your estimated days.",
			p.Name, reward.DaysEarly)
	}
	if err := s.notifs.NotifyRole(ctx, t.NextRole, p.ID, msg); err != nil {
		log.Printf("completion notification failed project=%d role=%s: %v", p.ID, t.NextRole, err)
	}

	if reward.IsEarly {
		if err := s.notifs.NotifyRole(ctx, domain.RoleSuperadmin, p.ID,
			fmt.Sprintf("%s completed the %s stage of project %q %d days early and earned %d stars.",
				actorName, key, p.Name, reward.DaysEarly, reward.Stars)); err != nil {
			log.Printf("reward notification failed project=%d role=superadmin: %v", p.ID, err)
		}
	}
}
