package workflow

import "prodflow/internal/domain"

type CreateProjectRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	ClientName          string `json:"client_name" binding:"required"`
	DesignEstimatedDays int    `json:"design_estimated_days" binding:"required,min=1"`
}

type EstimateRequest struct {
	EstimatedDays int `json:"estimated_days" binding:"min=0"`
}

type StageDurationRequest struct {
	Stage   string `json:"stage" binding:"required"`
	NewDays int    `json:"new_days" binding:"min=0"`
}

// Actor is the authenticated identity performing an engine operation.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

func (a Actor) IsSuperadmin() bool { return a.Role == domain.RoleSuperadmin }

type ProjectWithCreator struct {
	domain.Project
	CreatedByName string `json:"created_by_name"`
}

type CompleteEarlyResult struct {
	Project     *domain.Project `json:"project"`
	StarsEarned int             `json:"stars_earned"`
	DaysEarly   int             `json:"days_early"`
	IsEarly     bool            `json:"is_early"`
}
