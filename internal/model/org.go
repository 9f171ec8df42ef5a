package model

import "time"

// Organization is the top level of the tenant hierarchy. Together with a
// Client it forms the tenant scope stamped on every business row.
type Organization struct {
	OrgID        int       `gorm:"column:orgid;primaryKey;autoIncrement" json:"orgid"`
	OrgName      string    `gorm:"column:orgname;type:varchar(255);not null" json:"orgname"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`
	ContactEmail string    `gorm:"column:contactemail;type:varchar(255)" json:"contactemail,omitempty"`
	CreatedAt    time.Time `gorm:"column:createdat;autoCreateTime" json:"createdat"`
	UpdatedAt    time.Time `gorm:"column:updatedat;autoUpdateTime" json:"updatedat"`
}

func (Organization) TableName() string { return "organizations" }

// Client is a tenant partition inside an Organization
type Client struct {
	ClientID   int           `gorm:"column:clientid;primaryKey;autoIncrement" json:"clientid"`
	ClientName string        `gorm:"column:clientname;type:varchar(255);not null" json:"clientname"`
	OrgID      int           `gorm:"column:orgid;not null;index" json:"orgid"`
	Org        *Organization `gorm:"foreignKey:OrgID;references:OrgID" json:"organization,omitempty"`
	CreatedAt  time.Time     `gorm:"column:createdat;autoCreateTime" json:"createdat"`
	UpdatedAt  time.Time     `gorm:"column:updatedat;autoUpdateTime" json:"updatedat"`
}

func (Client) TableName() string { return "clients" }
