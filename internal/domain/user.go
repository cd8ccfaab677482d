package domain

import "time"

type UserRole string

const (
	RoleDesigner           UserRole = "designer"
	RoleManufacturingChief UserRole = "manufacturing_chief"
	RolePurchasing         UserRole = "purchasing"
	RoleWarehouse          UserRole = "warehouse"
	RoleSuperadmin         UserRole = "superadmin"
)

// PipelineRoles are the roles that take part in project stages.
var PipelineRoles = []UserRole{
	RoleDesigner,
	RoleManufacturingChief,
	RolePurchasing,
	RoleWarehouse,
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleDesigner, RoleManufacturingChief, RolePurchasing, RoleWarehouse, RoleSuperadmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Stars        int       `json:"stars"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
