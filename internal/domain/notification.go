package domain

import "time"

type Notification struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index:idx_notifications_user"`
	ProjectID int64     `json:"project_id"`
	Message   string    `json:"message" gorm:"type:text"`
	Read      bool      `json:"read" gorm:"index:idx_notifications_user"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
