package model

import "time"

// Role is immutable reference data. The numeric RoleID is the legacy wire
// representation (1=admin, 2=hr, 3=employee); profiles store the role name
// inline. Both forms are translated into the rbac enum at the boundary.
type Role struct {
	RoleID      int       `gorm:"column:roleid;primaryKey" json:"roleid"`
	RoleName    string    `gorm:"column:rolename;type:varchar(50);uniqueIndex;not null" json:"rolename"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:isactive;not null;default:true" json:"isactive"`
	CreatedAt   time.Time `gorm:"column:createdat;autoCreateTime" json:"createdat"`
	UpdatedAt   time.Time `gorm:"column:updatedat;autoUpdateTime" json:"updatedat"`
}

func (Role) TableName() string { return "roles" }
