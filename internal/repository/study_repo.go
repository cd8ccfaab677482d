package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type StudyRepository struct {
	db *gorm.DB
}

func NewStudyRepository(db *gorm.DB) *StudyRepository {
	return &StudyRepository{db: db}
}

func (r *StudyRepository) Create(ctx context.Context, s *domain.Study) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StudyRepository) GetByID(ctx context.Context, id int64) (*domain.Study, error) {
	var s domain.Study
	tx := r.db.WithContext(ctx).Preload("Stages").First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *StudyRepository) List(ctx context.Context) ([]domain.Study, error) {
	var studies []domain.Study
	tx := r.db.WithContext(ctx).Preload("Stages").Order("created_at DESC").Find(&studies)
	return studies, tx.Error
}

// UpdateEstimate writes one stage estimate and the recomputed study totals
// in a single transaction, guarded on the study still being editable.
func (r *StudyRepository) UpdateEstimate(
	ctx context.Context,
	studyID int64,
	stage domain.StageKey,
	stageFields map[string]any,
	studyFields map[string]any,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if studyFields == nil {
			studyFields = map[string]any{}
		}
		studyFields["updated_at"] = time.Now().UTC()

		res := tx.Model(&domain.Study{}).
			Where("id = ? AND status IN ?", studyID, []string{string(domain.StudyDraft), string(domain.StudyInReview)}).
			Updates(studyFields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		return tx.Model(&domain.StudyEstimate{}).
			Where("study_id = ? AND stage = ?", studyID, stage).
			Updates(stageFields).Error
	})
}

// Promote creates the project spawned by an approved study and flips the
// study to approved in the same transaction. The status guard makes the
// promotion happen at most once even under concurrent approvals.
func (r *StudyRepository) Promote(ctx context.Context, studyID int64, p *domain.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Study{}).
			Where("id = ? AND status <> ?", studyID, domain.StudyApproved).
			Updates(map[string]any{
				"status":     domain.StudyApproved,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if err := tx.Create(p).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Study{}).
			Where("id = ?", studyID).
			Update("started_project_id", p.ID).Error
	})
}

func (r *StudyRepository) UpdateStatus(ctx context.Context, studyID int64, from []domain.StudyStatus, to domain.StudyStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Study{}).
		Where("id = ? AND status IN ?", studyID, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
