package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

// Service is the study engine: collaborative estimation over the five
// pipeline stages plus the promotion of an approved study into a live
// project.
type Service struct {
	studies StudyRepository
	users   UserDirectory
}

func NewService(studies StudyRepository, users UserDirectory) *Service {
	return &Service{studies: studies, users: users}
}

func (s *Service) Create(ctx context.Context, actor Actor, req CreateStudyRequest) (*domain.Study, error) {
	st := &domain.Study{
		Name:        req.Name,
		Description: req.Description,
		ClientName:  req.ClientName,
		CreatedBy:   actor.ID,
		Status:      domain.StudyDraft,
	}
	for _, key := range domain.StageKeys {
		st.Stages = append(st.Stages, domain.StudyEstimate{Stage: key})
	}

	if err := s.studies.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// List returns all studies to every role; estimation is collaborative.
func (s *Service) List(ctx context.Context) ([]StudyWithCreator, error) {
	studies, err := s.studies.List(ctx)
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	if users, err := s.users.GetAll(ctx); err == nil {
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	out := make([]StudyWithCreator, 0, len(studies))
	for _, st := range studies {
		name := names[st.CreatedBy]
		if name == "" {
			name = "unknown"
		}
		out = append(out, StudyWithCreator{Study: st, CreatedByName: name})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Study, error) {
	st, err := s.studies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

// UpdateStageEstimate writes one stage's estimate and recomputes the study
// totals. Any pipeline role may edit any stage; unlike live projects the
// stages are deliberately not role-gated. The estimated window re-anchors
// to the moment of the edit.
func (s *Service) UpdateStageEstimate(ctx context.Context, studyID int64, actor Actor, stageName string, req EstimateUpdateRequest) (*domain.Study, error) {
	if !actor.Role.Valid() {
		return nil, ErrForbidden
	}

	key := domain.StageKey(stageName)
	if !key.Valid() {
		return nil, ErrInvalidStage
	}

	st, err := s.Get(ctx, studyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stageFields := map[string]any{
		"estimated_days": req.EstimatedDays,
		"estimated_by":   actor.ID,
		"estimated_at":   now,
		"notes":          req.Notes,
	}

	// Recompute totals against the incoming value.
	if est := st.Stage(key); est != nil {
		est.EstimatedDays = req.EstimatedDays
	}
	total := st.SumEstimatedDays()

	studyFields := map[string]any{"total_estimated_days": total}
	if total > 0 {
		end := now.Add(time.Duration(total) * 24 * time.Hour)
		studyFields["estimated_start_date"] = now
		studyFields["estimated_end_date"] = end
	}

	if err := s.studies.UpdateEstimate(ctx, studyID, key, stageFields, studyFields); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: study is no longer editable", ErrInvalidState)
		}
		return nil, err
	}

	return s.Get(ctx, studyID)
}

// Approve promotes the study into a live project. Only the creator or a
// superadmin may approve; a design estimate is mandatory. Approving an
// already approved study returns the existing project instead of creating a
// second one.
func (s *Service) Approve(ctx context.Context, studyID int64, actor Actor) (*ApproveResult, error) {
	st, err := s.Get(ctx, studyID)
	if err != nil {
		return nil, err
	}

	if actor.ID != st.CreatedBy && !actor.IsSuperadmin() {
		return nil, ErrForbidden
	}

	if st.Status == domain.StudyApproved {
		if st.StartedProjectID == nil {
			return nil, fmt.Errorf("%w: study approved but no project recorded", ErrInvalidState)
		}
		return &ApproveResult{ProjectID: *st.StartedProjectID, AlreadyApproved: true}, nil
	}
	if st.Status == domain.StudyRejected {
		return nil, fmt.Errorf("%w: study was rejected", ErrInvalidState)
	}

	design := st.Stage(domain.StageDesign)
	if design == nil || design.EstimatedDays == 0 {
		return nil, fmt.Errorf("%w: a design estimate is required before approval", ErrInvalidState)
	}

	p := s.materialize(st, time.Now().UTC())
	if err := s.studies.Promote(ctx, studyID, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return &ApproveResult{ProjectID: p.ID}, nil
}

// materialize builds the project seeded from the study: the design stage
// opens immediately, the remaining stages carry their estimates but stay
// pending until the pipeline reaches them.
func (s *Service) materialize(st *domain.Study, now time.Time) *domain.Project {
	p := &domain.Project{
		Name:        st.Name,
		Description: st.Description,
		ClientName:  st.ClientName,
		CreatedBy:   st.CreatedBy,
		Status:      domain.ProjectDesign,
	}

	for _, key := range domain.StageKeys {
		days := 0
		if est := st.Stage(key); est != nil {
			days = est.EstimatedDays
		}

		stage := domain.ProjectStage{
			Stage:         key,
			Status:        domain.StagePending,
			EstimatedDays: days,
		}
		if key == domain.StageDesign {
			start := now
			end := now.Add(time.Duration(days) * 24 * time.Hour)
			responsible := st.CreatedBy
			stage.Status = domain.StageInProgress
			stage.StartDate = &start
			stage.EndDate = &end
			stage.ResponsibleUserID = &responsible
		}
		p.Stages = append(p.Stages, stage)
	}

	return p
}

// Reject closes a draft or in-review study without producing a project.
func (s *Service) Reject(ctx context.Context, studyID int64, actor Actor) (*domain.Study, error) {
	st, err := s.Get(ctx, studyID)
	if err != nil {
		return nil, err
	}

	if actor.ID != st.CreatedBy && !actor.IsSuperadmin() {
		return nil, ErrForbidden
	}

	err = s.studies.UpdateStatus(ctx, studyID,
		[]domain.StudyStatus{domain.StudyDraft, domain.StudyInReview},
		domain.StudyRejected)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: study can no longer be rejected", ErrInvalidState)
		}
		return nil, err
	}

	return s.Get(ctx, studyID)
}
