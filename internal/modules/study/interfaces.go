package study

import (
	"context"

	"prodflow/internal/domain"
)

type StudyRepository interface {
	Create(ctx context.Context, s *domain.Study) error
	GetByID(ctx context.Context, id int64) (*domain.Study, error)
	List(ctx context.Context) ([]domain.Study, error)
	UpdateEstimate(ctx context.Context, studyID int64, stage domain.StageKey, stageFields, studyFields map[string]any) error
	Promote(ctx context.Context, studyID int64, p *domain.Project) error
	UpdateStatus(ctx context.Context, studyID int64, from []domain.StudyStatus, to domain.StudyStatus) error
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
}
