package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateEmployee     = "CREATE_EMPLOYEE"
	ActionUpdateEmployee     = "UPDATE_EMPLOYEE"
	ActionDeactivateEmployee = "DEACTIVATE_EMPLOYEE"
	ActionCheckIn            = "CHECK_IN"
	ActionCheckOut           = "CHECK_OUT"
	ActionEditAttendance     = "EDIT_ATTENDANCE"
)

// AuditLog tracks Who, What, and When for critical system changes.
// Tenant-stamped like every other business row.
type AuditLog struct {
	LogID      uint       `gorm:"column:logid;primaryKey;autoIncrement" json:"logid"`
	OrgID      int        `gorm:"column:orgid;not null;index:idx_audit_tenant" json:"orgid"`
	ClientID   int        `gorm:"column:clientid;not null;index:idx_audit_tenant" json:"clientid"`
	UserID     *uuid.UUID `gorm:"type:uuid;column:userid;index" json:"userid"` // nil for system actions
	User       *User      `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	ActionType string     `gorm:"column:actiontype;type:varchar(50);not null;index" json:"actiontype"`
	Entity     string     `gorm:"column:tablename;type:varchar(50)" json:"tablename,omitempty"`
	RecordID   string     `gorm:"column:recordid;type:varchar(64)" json:"recordid,omitempty"`
	OldValue   string     `gorm:"column:oldvalue;type:jsonb" json:"oldvalue,omitempty"`
	NewValue   string     `gorm:"column:newvalue;type:jsonb" json:"newvalue,omitempty"`
	Remarks    string     `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt  time.Time  `gorm:"column:createdat;autoCreateTime;index" json:"createdat"`
}

func (AuditLog) TableName() string { return "audit_logs" }
