package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

// ErrConflict means a guarded update found the project in a status other
// than the one the caller read. The caller lost a concurrent race and must
// re-read before retrying.
var ErrConflict = errors.New("project modified concurrently")

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// StageUpdate targets a single stage row of a project.
type StageUpdate struct {
	Stage  domain.StageKey
	Fields map[string]any
}

type ProjectFilter struct {
	CreatedBy *int64
	Status    string
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	tx := r.db.WithContext(ctx).Preload("Stages").First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	q := r.db.WithContext(ctx).Preload("Stages").Order("created_at DESC")
	if filter.CreatedBy != nil {
		q = q.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var projects []domain.Project
	tx := q.Find(&projects)
	return projects, tx.Error
}

// UpdateGuarded applies project and stage field updates in one transaction,
// conditioned on the project still holding expectedStatus. Zero matched rows
// aborts with ErrConflict so two racing writers can never both transition.
// A positive star amount is credited to starUserID inside the same
// transaction; a lost race therefore cannot double-award.
func (r *ProjectRepository) UpdateGuarded(
	ctx context.Context,
	projectID int64,
	expectedStatus domain.ProjectStatus,
	fields map[string]any,
	stages []StageUpdate,
	starUserID int64,
	stars int,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if fields == nil {
			fields = map[string]any{}
		}
		fields["updated_at"] = time.Now().UTC()

		res := tx.Model(&domain.Project{}).
			Where("id = ? AND status = ?", projectID, expectedStatus).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		for _, su := range stages {
			if err := tx.Model(&domain.ProjectStage{}).
				Where("project_id = ? AND stage = ?", projectID, su.Stage).
				Updates(su.Fields).Error; err != nil {
				return err
			}
		}

		if stars > 0 {
			if err := tx.Model(&domain.User{}).
				Where("id = ?", starUserID).
				UpdateColumn("stars", gorm.Expr("stars + ?", stars)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
