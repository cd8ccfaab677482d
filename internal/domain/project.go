package domain

import "time"

type ProjectStatus string

const (
	ProjectDraft         ProjectStatus = "draft"
	ProjectDesign        ProjectStatus = "design"
	ProjectValidation    ProjectStatus = "validation"
	ProjectPurchasing    ProjectStatus = "purchasing"
	ProjectWarehouse     ProjectStatus = "warehouse"
	ProjectManufacturing ProjectStatus = "manufacturing"
	ProjectCompleted     ProjectStatus = "completed"
)

type StageStatus string

const (
	StagePending    StageStatus = "pending"
	StageInProgress StageStatus = "in_progress"
	StageCompleted  StageStatus = "completed"
	StageDelayed    StageStatus = "delayed"
)

type StageKey string

const (
	StageDesign        StageKey = "design"
	StageValidation    StageKey = "validation"
	StagePurchasing    StageKey = "purchasing"
	StageWarehouse     StageKey = "warehouse"
	StageManufacturing StageKey = "manufacturing"
)

// StageKeys lists the pipeline stages in execution order.
var StageKeys = []StageKey{
	StageDesign,
	StageValidation,
	StagePurchasing,
	StageWarehouse,
	StageManufacturing,
}

func (k StageKey) Valid() bool {
	for _, s := range StageKeys {
		if s == k {
			return true
		}
	}
	return false
}

type Project struct {
	ID             int64          `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name"`
	Description    string         `json:"description" gorm:"type:text"`
	ClientName     string         `json:"client_name"`
	CreatedBy      int64          `json:"created_by"`
	Status         ProjectStatus  `json:"status" gorm:"index"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	CompletedEarly bool           `json:"completed_early"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Stages         []ProjectStage `json:"stages,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string { return "projects" }

// Stage returns the stage record for the given key, or nil.
func (p *Project) Stage(key StageKey) *ProjectStage {
	for i := range p.Stages {
		if p.Stages[i].Stage == key {
			return &p.Stages[i]
		}
	}
	return nil
}

type ProjectStage struct {
	ID        int64       `json:"-" gorm:"primaryKey"`
	ProjectID int64       `json:"-" gorm:"uniqueIndex:idx_project_stage,priority:1"`
	Stage     StageKey    `json:"stage" gorm:"uniqueIndex:idx_project_stage,priority:2"`
	Status    StageStatus `json:"status"`

	EstimatedDays int        `json:"estimated_days"`
	ActualDays    int        `json:"actual_days"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`

	ResponsibleUserID *int64     `json:"responsible_user_id,omitempty"`
	EstimatedBy       *int64     `json:"estimated_by,omitempty"`
	EstimatedAt       *time.Time `json:"estimated_at,omitempty"`

	CompletedEarly bool `json:"completed_early"`
	DaysEarly      int  `json:"days_early"`

	// Warehouse stage only: set through the explicit confirmation operation.
	MaterialsConfirmed   bool       `json:"materials_confirmed"`
	MaterialsConfirmedBy *int64     `json:"materials_confirmed_by,omitempty"`
	MaterialsConfirmedAt *time.Time `json:"materials_confirmed_at,omitempty"`
}

func (ProjectStage) TableName() string { return "project_stages" }
