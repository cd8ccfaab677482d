package repository

import (
	"context"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type ObservationRepository struct {
	db *gorm.DB
}

func NewObservationRepository(db *gorm.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

func (r *ObservationRepository) Create(ctx context.Context, o *domain.Observation) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ObservationRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Observation, error) {
	var list []domain.Observation
	tx := r.db.WithContext(ctx).
		Preload("Recipients").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&list)
	return list, tx.Error
}

func (r *ObservationRepository) ListByRecipient(ctx context.Context, userID int64, limit int) ([]domain.Observation, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var list []domain.Observation
	tx := r.db.WithContext(ctx).
		Preload("Recipients").
		Joins("JOIN observation_recipients ON observation_recipients.observation_id = observations.id").
		Where("observation_recipients.user_id = ?", userID).
		Order("observations.created_at DESC").
		Limit(limit).
		Find(&list)
	return list, tx.Error
}
