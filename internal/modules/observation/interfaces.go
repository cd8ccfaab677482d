package observation

import (
	"context"

	"prodflow/internal/domain"
)

type ObservationRepository interface {
	Create(ctx context.Context, o *domain.Observation) error
	ListByProject(ctx context.Context, projectID int64) ([]domain.Observation, error)
	ListByRecipient(ctx context.Context, userID int64, limit int) ([]domain.Observation, error)
}

type ProjectReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type NotificationSender interface {
	NotifyUser(ctx context.Context, userID, projectID int64, message string) error
}
