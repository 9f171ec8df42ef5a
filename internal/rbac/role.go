package rbac

// Role is the closed enumeration used everywhere inside the service. The
// data store historically carried roles in two incompatible forms: a numeric
// id referencing the roles lookup table, and an inline lowercase name. Both
// are translated here and the ambiguity never leaks past this package.
type Role int

const (
	RoleEmployee Role = iota
	RoleHR
	RoleAdmin
)

// Legacy numeric role ids from the roles reference table.
const (
	LegacyAdminID    = 1
	LegacyHRID       = 2
	LegacyEmployeeID = 3
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleHR:
		return "hr"
	default:
		return "employee"
	}
}

// LegacyID returns the numeric wire representation for the roles table.
func (r Role) LegacyID() int {
	switch r {
	case RoleAdmin:
		return LegacyAdminID
	case RoleHR:
		return LegacyHRID
	default:
		return LegacyEmployeeID
	}
}

// ParseRole maps a stored role name onto the enum. Unknown values degrade to
// RoleEmployee rather than failing: authorization falls to the lowest
// privilege instead of throwing.
func ParseRole(name string) Role {
	switch name {
	case "admin":
		return RoleAdmin
	case "hr":
		return RoleHR
	default:
		return RoleEmployee
	}
}

// RoleFromID maps the legacy numeric id onto the enum, with the same
// degrade-to-employee behavior for unknown ids.
func RoleFromID(id int) Role {
	switch id {
	case LegacyAdminID:
		return RoleAdmin
	case LegacyHRID:
		return RoleHR
	default:
		return RoleEmployee
	}
}

// IsValidRoleName reports whether name is one of the three canonical roles.
// Used by input validation; ParseRole itself never rejects.
func IsValidRoleName(name string) bool {
	return name == "admin" || name == "hr" || name == "employee"
}
