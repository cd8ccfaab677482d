package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func projectWithActiveStage(id int64, status domain.ProjectStatus, stage domain.StageKey, end time.Time) domain.Project {
	start := end.Add(-5 * 24 * time.Hour)
	return domain.Project{
		ID:     id,
		Name:   "p",
		Status: status,
		Stages: []domain.ProjectStage{
			{Stage: stage, Status: domain.StageInProgress, StartDate: &start, EndDate: &end},
		},
	}
}

func TestService_Summary_ClassifiesProjectHealth(t *testing.T) {
	projects := new(MockProjectReader)
	users := new(MockUserDirectory)
	svc := NewService(projects, users)

	now := time.Now().UTC()
	completedAt := now.Add(-24 * time.Hour)
	data := []domain.Project{
		projectWithActiveStage(1, domain.ProjectDesign, domain.StageDesign, now.Add(-24*time.Hour)),
		projectWithActiveStage(2, domain.ProjectPurchasing, domain.StagePurchasing, now.Add(24*time.Hour)),
		projectWithActiveStage(3, domain.ProjectManufacturing, domain.StageManufacturing, now.Add(10*24*time.Hour)),
		{ID: 4, Status: domain.ProjectCompleted, CompletedAt: &completedAt, CompletedEarly: true},
	}

	projects.On("List", mock.Anything, repository.ProjectFilter{}).Return(data, nil)
	users.On("GetAll", mock.Anything).Return([]domain.User{
		{ID: 1, Name: "Dana", Stars: 3},
		{ID: 2, Name: "Marat", Stars: 0},
	}, nil)

	s, err := svc.Summary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4, s.TotalProjects)
	assert.Equal(t, 3, s.ActiveProjects)
	assert.Equal(t, 1, s.CompletedProjects)
	assert.Equal(t, 1, s.CompletedEarly)
	assert.Equal(t, 1, s.Delayed)
	assert.Equal(t, 1, s.AtRisk)
	assert.Equal(t, 1, s.OnTime)
	assert.Equal(t, 1, s.DelaysByStage["design"])
	assert.Equal(t, 3, s.StarsByUser["Dana"])
	assert.NotContains(t, s.StarsByUser, "Marat")
}

func TestService_Gantt_DesignerSeesOnlyOwnProjects(t *testing.T) {
	projects := new(MockProjectReader)
	svc := NewService(projects, new(MockUserDirectory))

	userID := int64(7)
	projects.On("List", mock.Anything, repository.ProjectFilter{CreatedBy: &userID}).
		Return([]domain.Project{}, nil)

	_, err := svc.Gantt(context.Background(), userID, domain.RoleDesigner)

	assert.NoError(t, err)
	projects.AssertExpectations(t)
}

func TestService_Gantt_ChainsStartedStages(t *testing.T) {
	projects := new(MockProjectReader)
	svc := NewService(projects, new(MockUserDirectory))

	now := time.Now().UTC()
	earlier := now.Add(-3 * 24 * time.Hour)
	p := domain.Project{
		ID: 5, Name: "Press line", Status: domain.ProjectValidation,
		Stages: []domain.ProjectStage{
			{Stage: domain.StageDesign, Status: domain.StageCompleted, StartDate: &earlier, EndDate: &now},
			{Stage: domain.StageValidation, Status: domain.StageInProgress, StartDate: &now},
			{Stage: domain.StagePurchasing, Status: domain.StagePending},
		},
	}
	projects.On("List", mock.Anything, mock.Anything).Return([]domain.Project{p}, nil)

	tasks, err := svc.Gantt(context.Background(), 1, domain.RoleSuperadmin)

	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "5_design", tasks[0].ID)
	assert.Equal(t, 100, tasks[0].Progress)
	assert.Empty(t, tasks[0].Dependencies)
	assert.Equal(t, "5_validation", tasks[1].ID)
	assert.Equal(t, 50, tasks[1].Progress)
	assert.Equal(t, "5_design", tasks[1].Dependencies)
}
