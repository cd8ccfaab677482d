package study

import "prodflow/internal/domain"

type CreateStudyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ClientName  string `json:"client_name" binding:"required"`
}

type EstimateUpdateRequest struct {
	EstimatedDays int    `json:"estimated_days" binding:"min=0"`
	Notes         string `json:"notes"`
}

type Actor struct {
	ID   int64
	Role domain.UserRole
}

func (a Actor) IsSuperadmin() bool { return a.Role == domain.RoleSuperadmin }

type StudyWithCreator struct {
	domain.Study
	CreatedByName string `json:"created_by_name"`
}

type ApproveResult struct {
	ProjectID int64 `json:"project_id"`
	// AlreadyApproved is set when approve was called on an approved study;
	// the existing project is returned instead of spawning a second one.
	AlreadyApproved bool `json:"already_approved,omitempty"`
}
