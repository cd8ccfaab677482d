package domain

import "time"

type StudyStatus string

const (
	StudyDraft    StudyStatus = "draft"
	StudyInReview StudyStatus = "in_review"
	StudyApproved StudyStatus = "approved"
	StudyRejected StudyStatus = "rejected"
)

// Study is a draft simulation of a project pipeline used for estimation.
// Stage estimates carry no live dates until the study is promoted.
type Study struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name"`
	Description string      `json:"description" gorm:"type:text"`
	ClientName  string      `json:"client_name"`
	CreatedBy   int64       `json:"created_by"`
	Status      StudyStatus `json:"status" gorm:"index"`

	TotalEstimatedDays int        `json:"total_estimated_days"`
	EstimatedStartDate *time.Time `json:"estimated_start_date,omitempty"`
	EstimatedEndDate   *time.Time `json:"estimated_end_date,omitempty"`
	StartedProjectID   *int64     `json:"started_project_id,omitempty"`

	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Stages    []StudyEstimate `json:"stages,omitempty" gorm:"foreignKey:StudyID"`
}

func (Study) TableName() string { return "studies" }

func (s *Study) Stage(key StageKey) *StudyEstimate {
	for i := range s.Stages {
		if s.Stages[i].Stage == key {
			return &s.Stages[i]
		}
	}
	return nil
}

// SumEstimatedDays recomputes the study total across all five stages.
func (s *Study) SumEstimatedDays() int {
	total := 0
	for i := range s.Stages {
		total += s.Stages[i].EstimatedDays
	}
	return total
}

type StudyEstimate struct {
	ID            int64      `json:"-" gorm:"primaryKey"`
	StudyID       int64      `json:"-" gorm:"uniqueIndex:idx_study_stage,priority:1"`
	Stage         StageKey   `json:"stage" gorm:"uniqueIndex:idx_study_stage,priority:2"`
	EstimatedDays int        `json:"estimated_days"`
	EstimatedBy   *int64     `json:"estimated_by,omitempty"`
	EstimatedAt   *time.Time `json:"estimated_at,omitempty"`
	Notes         string     `json:"notes,omitempty" gorm:"type:text"`
}

func (StudyEstimate) TableName() string { return "study_estimates" }
