package database

import (
	"log"

	"attendance/internal/model"
	"attendance/internal/rbac"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Organization{},
		&model.Client{},
		&model.Department{},
		&model.Branch{},
		&model.Role{},
		&model.User{},
		&model.LoginIdentity{},
		&model.RefreshToken{},
		&model.Attendance{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	if err := SeedRoles(db); err != nil {
		log.Println("WARNING: Failed to seed roles:", err)
	}

	return db, nil
}

// SeedRoles inserts the three reference roles if they are missing. Role ids
// are fixed: they are the legacy numeric wire representation.
func SeedRoles(db *gorm.DB) error {
	roles := []model.Role{
		{RoleID: rbac.LegacyAdminID, RoleName: "admin", Description: "Full administrative access", IsActive: true},
		{RoleID: rbac.LegacyHRID, RoleName: "hr", Description: "Employee and attendance management", IsActive: true},
		{RoleID: rbac.LegacyEmployeeID, RoleName: "employee", Description: "Self-service attendance", IsActive: true},
	}

	for _, role := range roles {
		var existing model.Role
		if err := db.First(&existing, "roleid = ?", role.RoleID).Error; err == nil {
			continue
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
