package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the tenant-scoped employee profile bound to a login identity.
// The (OrgID, ClientID) pair never changes outside explicit administrative
// updates. Soft delete only: IsActive=false rows are invisible to normal
// reads.
type User struct {
	UserID       uuid.UUID     `gorm:"type:uuid;column:userid;primaryKey" json:"userid"`
	OrgID        int           `gorm:"column:orgid;not null;index:idx_users_tenant" json:"orgid"`
	ClientID     int           `gorm:"column:clientid;not null;index:idx_users_tenant" json:"clientid"`
	FullName     string        `gorm:"column:fullname;type:varchar(255);not null" json:"fullname"`
	Email        string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role         string        `gorm:"type:varchar(50);not null" json:"role"` // admin, hr, employee
	DepartmentID *int          `gorm:"column:departmentid;index" json:"departmentid,omitempty"`
	BranchID     *int          `gorm:"column:branchid;index" json:"branchid,omitempty"`
	Status       string        `gorm:"type:varchar(50);not null;default:'Active'" json:"status"`
	IsActive     bool          `gorm:"column:isactive;not null;default:true" json:"isactive"`
	CreatedAt    time.Time     `gorm:"column:createdat;autoCreateTime" json:"createdat"`
	UpdatedAt    time.Time     `gorm:"column:updatedat;autoUpdateTime" json:"updatedat"`
	Org          *Organization `gorm:"foreignKey:OrgID;references:OrgID" json:"organization,omitempty"`
	Client       *Client       `gorm:"foreignKey:ClientID;references:ClientID" json:"client,omitempty"`
	Department   *Department   `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	Branch       *Branch       `gorm:"foreignKey:BranchID;references:BranchID" json:"branch,omitempty"`
}

func (User) TableName() string { return "users" }

// LoginIdentity is the auth collaborator's record: credentials plus
// app-level role metadata, keyed by the same UUID as the profile row.
type LoginIdentity struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleMetadata   string    `gorm:"column:role_metadata;type:varchar(50)" json:"role_metadata"`
	EmailConfirmed bool      `gorm:"not null;default:false" json:"email_confirmed"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoginIdentity) TableName() string { return "login_identities" }

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IdentityID uuid.UUID `gorm:"type:uuid;not null;index" json:"identity_id"`
	Token      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
