package domain

import "time"

// Observation is a stage-scoped comment on a project. Listed recipients are
// notified when it is created.
type Observation struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	ProjectID     int64     `json:"project_id" gorm:"index"`
	Stage         string    `json:"stage"`
	Content       string    `json:"content" gorm:"type:text"`
	CreatedBy     int64     `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedByRole string    `json:"created_by_role,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	Recipients []ObservationRecipient `json:"recipients,omitempty" gorm:"foreignKey:ObservationID"`
}

func (Observation) TableName() string { return "observations" }

type ObservationRecipient struct {
	ID            int64 `json:"-" gorm:"primaryKey"`
	ObservationID int64 `json:"-" gorm:"index"`
	UserID        int64 `json:"user_id" gorm:"index"`
}

func (ObservationRecipient) TableName() string { return "observation_recipients" }
