package workflow

import (
	"context"

	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error)
	UpdateGuarded(
		ctx context.Context,
		projectID int64,
		expectedStatus domain.ProjectStatus,
		fields map[string]any,
		stages []repository.StageUpdate,
		starUserID int64,
		stars int,
	) error
}

// ArtifactStore answers the gate predicate: does an artifact of the given
// type exist for the project. Content handling stays external.
type ArtifactStore interface {
	Exists(ctx context.Context, projectID int64, documentType string) (bool, error)
}

// NotificationSender is the outbound notification port. Calls are side
// effects only; the engine never fails a transition on a send error.
type NotificationSender interface {
	NotifyUser(ctx context.Context, userID, projectID int64, message string) error
	NotifyRole(ctx context.Context, role domain.UserRole, projectID int64, message string) error
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
}
