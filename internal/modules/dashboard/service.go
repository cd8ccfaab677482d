package dashboard

import (
	"context"
	"fmt"
	"time"

	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

// atRiskWindow marks active stages whose deadline is this close as at risk.
const atRiskWindow = 48 * time.Hour

type Service struct {
	projects ProjectReader
	users    UserDirectory
}

func NewService(projects ProjectReader, users UserDirectory) *Service {
	return &Service{projects: projects, users: users}
}

type Summary struct {
	TotalProjects     int            `json:"total_projects"`
	ActiveProjects    int            `json:"active_projects"`
	CompletedProjects int            `json:"completed_projects"`
	CompletedEarly    int            `json:"completed_early"`
	Delayed           int            `json:"delayed"`
	AtRisk            int            `json:"at_risk"`
	OnTime            int            `json:"on_time"`
	DelaysByStage     map[string]int `json:"delays_by_stage"`
	StarsByUser       map[string]int `json:"stars_by_user"`
}

// Summary computes the KPI block from current project state. Health of an
// active project is judged by its active stage deadline.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	projects, err := s.projects.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := &Summary{
		DelaysByStage: map[string]int{},
		StarsByUser:   map[string]int{},
	}

	for i := range projects {
		p := &projects[i]
		out.TotalProjects++

		if p.Status == domain.ProjectCompleted {
			out.CompletedProjects++
			if p.CompletedEarly {
				out.CompletedEarly++
			}
			continue
		}

		key, ok := domain.ActiveStageKey(p.Status)
		if !ok {
			continue
		}
		out.ActiveProjects++

		stage := p.Stage(key)
		if stage == nil || stage.EndDate == nil {
			out.OnTime++
			continue
		}

		switch {
		case stage.EndDate.Before(now):
			out.Delayed++
			out.DelaysByStage[string(key)]++
		case stage.EndDate.Sub(now) <= atRiskWindow:
			out.AtRisk++
		default:
			out.OnTime++
		}
	}

	if users, err := s.users.GetAll(ctx); err == nil {
		for _, u := range users {
			if u.Stars > 0 {
				out.StarsByUser[u.Name] = u.Stars
			}
		}
	}

	return out, nil
}

type GanttTask struct {
	ID           string     `json:"id"`
	ProjectID    int64      `json:"project_id"`
	ProjectName  string     `json:"project_name"`
	Stage        string     `json:"stage"`
	Status       string     `json:"status"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Progress     int        `json:"progress"`
	Dependencies string     `json:"dependencies,omitempty"`
}

// Gantt emits one task per started stage, chained to its predecessor. A
// designer sees only their own projects; other roles see everything.
func (s *Service) Gantt(ctx context.Context, userID int64, role domain.UserRole) ([]GanttTask, error) {
	filter := repository.ProjectFilter{}
	if role == domain.RoleDesigner {
		filter.CreatedBy = &userID
	}

	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var tasks []GanttTask
	for i := range projects {
		p := &projects[i]

		prevID := ""
		for _, key := range domain.StageKeys {
			stage := p.Stage(key)
			if stage == nil || stage.StartDate == nil {
				continue
			}

			id := fmt.Sprintf("%d_%s", p.ID, key)
			tasks = append(tasks, GanttTask{
				ID:           id,
				ProjectID:    p.ID,
				ProjectName:  p.Name,
				Stage:        string(key),
				Status:       string(stage.Status),
				StartDate:    stage.StartDate,
				EndDate:      stage.EndDate,
				Progress:     stageProgress(stage.Status),
				Dependencies: prevID,
			})
			prevID = id
		}
	}
	return tasks, nil
}

func stageProgress(status domain.StageStatus) int {
	switch status {
	case domain.StageCompleted:
		return 100
	case domain.StageInProgress, domain.StageDelayed:
		return 50
	default:
		return 0
	}
}
