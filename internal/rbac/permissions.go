package rbac

// PermissionSet is the full capability table derived from a role. It is
// computed fresh on every evaluation and never persisted; it depends on the
// role alone, not on tenant, time, or any other state.
type PermissionSet struct {
	CanViewDashboard      bool `json:"canViewDashboard"`
	CanViewEmployees      bool `json:"canViewEmployees"`
	CanCreateEmployee     bool `json:"canCreateEmployee"`
	CanEditEmployee       bool `json:"canEditEmployee"`
	CanDeleteEmployee     bool `json:"canDeleteEmployee"`
	CanViewAttendance     bool `json:"canViewAttendance"`
	CanEditAttendance     bool `json:"canEditAttendance"`
	CanViewReports        bool `json:"canViewReports"`
	CanManageSettings     bool `json:"canManageSettings"`
	CanManageRoles        bool `json:"canManageRoles"`
	CanManageOrganization bool `json:"canManageOrganization"`
}

// Evaluate is pure and total: every Role value, including anything outside
// the enumeration, maps to a result. Out-of-range input gets the
// employee-equivalent view-only set.
func Evaluate(role Role) PermissionSet {
	switch role {
	case RoleAdmin:
		return PermissionSet{
			CanViewDashboard:      true,
			CanViewEmployees:      true,
			CanCreateEmployee:     true,
			CanEditEmployee:       true,
			CanDeleteEmployee:     true,
			CanViewAttendance:     true,
			CanEditAttendance:     true,
			CanViewReports:        true,
			CanManageSettings:     true,
			CanManageRoles:        true,
			CanManageOrganization: true,
		}
	case RoleHR:
		return PermissionSet{
			CanViewDashboard:  true,
			CanViewEmployees:  true,
			CanCreateEmployee: true,
			CanEditEmployee:   true,
			CanViewAttendance: true,
			CanEditAttendance: true,
			CanViewReports:    true,
		}
	default:
		return PermissionSet{
			CanViewDashboard:  true,
			CanViewEmployees:  true,
			CanViewAttendance: true,
		}
	}
}

// Convenience projections. All of them go through Evaluate so they can never
// drift from the table above.

func CanCreateEmployee(role Role) bool { return Evaluate(role).CanCreateEmployee }

func CanEditAttendance(role Role) bool { return Evaluate(role).CanEditAttendance }

func IsAdmin(role Role) bool { return Evaluate(role).CanManageOrganization }

func IsHR(role Role) bool { return role == RoleHR }

func IsEmployee(role Role) bool { return role == RoleEmployee }
