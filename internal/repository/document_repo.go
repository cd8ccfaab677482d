package repository

import (
	"context"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var d domain.Document
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Document, error) {
	var docs []domain.Document
	tx := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&docs)
	return docs, tx.Error
}

// Exists is the gating predicate: does an artifact of this type exist for
// the project.
func (r *DocumentRepository) Exists(ctx context.Context, projectID int64, documentType string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("project_id = ? AND document_type = ?", projectID, documentType).
		Count(&count)
	return count > 0, tx.Error
}
