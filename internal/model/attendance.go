package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendanceTypeRegular  = "Regular"
	AttendanceTypeOvertime = "Overtime"

	AttendanceMethodWeb    = "Web"
	AttendanceMethodMobile = "Mobile"

	AttendanceStatusPresent = "Present"
	AttendanceStatusLate    = "Late"
	AttendanceStatusAbsent  = "Absent"
)

// Attendance is one user's record for one calendar date. The tenant stamps
// (OrgID, ClientID) and UserID are set at creation and immutable through
// ordinary flows. At most one row exists per (UserID, Date).
type Attendance struct {
	AttendanceID uint       `gorm:"column:attendanceid;primaryKey;autoIncrement" json:"attendanceid"`
	OrgID        int        `gorm:"column:orgid;not null;index:idx_attendance_tenant" json:"orgid"`
	ClientID     int        `gorm:"column:clientid;not null;index:idx_attendance_tenant" json:"clientid"`
	UserID       uuid.UUID  `gorm:"type:uuid;column:userid;not null;index:idx_attendance_user_date" json:"userid"`
	Date         string     `gorm:"type:date;not null;index:idx_attendance_user_date" json:"date"` // YYYY-MM-DD
	CheckInTime  *time.Time `gorm:"column:checkintime" json:"checkintime"`
	CheckOutTime *time.Time `gorm:"column:checkouttime" json:"checkouttime"`
	LocationLat  *float64   `gorm:"column:locationlat" json:"locationlat,omitempty"`
	LocationLong *float64   `gorm:"column:locationlong" json:"locationlong,omitempty"`
	Type         string     `gorm:"type:varchar(50)" json:"type,omitempty"`
	Method       string     `gorm:"type:varchar(50)" json:"method,omitempty"`
	Status       string     `gorm:"type:varchar(50)" json:"status,omitempty"`
	Remarks      string     `gorm:"type:text" json:"remarks,omitempty"`
	IsActive     bool       `gorm:"column:isactive;not null;default:true" json:"isactive"`
	CreatedAt    time.Time  `gorm:"column:createdat;autoCreateTime" json:"createdat"`
	UpdatedAt    time.Time  `gorm:"column:updatedat;autoUpdateTime" json:"updatedat"`
	User         *User      `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Attendance) TableName() string { return "attendance" }
