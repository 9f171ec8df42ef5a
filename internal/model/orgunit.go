package model

import "time"

// Department groups employees inside one tenant scope
type Department struct {
	DepartmentID   int       `gorm:"column:departmentid;primaryKey;autoIncrement" json:"departmentid"`
	OrgID          int       `gorm:"column:orgid;not null;index:idx_departments_tenant" json:"orgid"`
	ClientID       int       `gorm:"column:clientid;not null;index:idx_departments_tenant" json:"clientid"`
	DepartmentName string    `gorm:"column:departmentname;type:varchar(255);not null" json:"departmentname"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	IsActive       bool      `gorm:"column:isactive;not null;default:true" json:"isactive"`
	CreatedAt      time.Time `gorm:"column:createdat;autoCreateTime" json:"createdat"`
	UpdatedAt      time.Time `gorm:"column:updatedat;autoUpdateTime" json:"updatedat"`
}

func (Department) TableName() string { return "departments" }

// Branch is a physical site of a tenant; location fields support
// geo-tagged check-ins
type Branch struct {
	BranchID       int       `gorm:"column:branchid;primaryKey;autoIncrement" json:"branchid"`
	OrgID          int       `gorm:"column:orgid;not null;index:idx_branches_tenant" json:"orgid"`
	ClientID       int       `gorm:"column:clientid;not null;index:idx_branches_tenant" json:"clientid"`
	BranchName     string    `gorm:"column:branchname;type:varchar(255);not null" json:"branchname"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	NetworkIPRange string    `gorm:"column:networkiprange;type:varchar(100)" json:"networkiprange,omitempty"`
	IsActive       bool      `gorm:"column:isactive;not null;default:true" json:"isactive"`
	CreatedAt      time.Time `gorm:"column:createdat;autoCreateTime" json:"createdat"`
	UpdatedAt      time.Time `gorm:"column:updatedat;autoUpdateTime" json:"updatedat"`
}

func (Branch) TableName() string { return "branches" }
