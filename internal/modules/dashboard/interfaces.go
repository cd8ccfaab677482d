package dashboard

import (
	"context"

	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

type ProjectReader interface {
	List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error)
}

type UserDirectory interface {
	GetAll(ctx context.Context) ([]domain.User, error)
}
