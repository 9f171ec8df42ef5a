package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// flags flattens a PermissionSet into a fixed-order slice so grants can be
// compared pairwise.
func flags(p PermissionSet) []bool {
	return []bool{
		p.CanViewDashboard,
		p.CanViewEmployees,
		p.CanCreateEmployee,
		p.CanEditEmployee,
		p.CanDeleteEmployee,
		p.CanViewAttendance,
		p.CanEditAttendance,
		p.CanViewReports,
		p.CanManageSettings,
		p.CanManageRoles,
		p.CanManageOrganization,
	}
}

func TestEvaluateAdminHasEveryCapability(t *testing.T) {
	for i, granted := range flags(Evaluate(RoleAdmin)) {
		assert.True(t, granted, "admin capability %d", i)
	}
}

func TestEvaluateGrantsAreMonotonic(t *testing.T) {
	employee := flags(Evaluate(RoleEmployee))
	hr := flags(Evaluate(RoleHR))
	admin := flags(Evaluate(RoleAdmin))

	for i := range employee {
		if employee[i] {
			assert.True(t, hr[i], "hr missing employee capability %d", i)
		}
		if hr[i] {
			assert.True(t, admin[i], "admin missing hr capability %d", i)
		}
	}
}

func TestEvaluateHRBoundaries(t *testing.T) {
	p := Evaluate(RoleHR)
	assert.True(t, p.CanCreateEmployee)
	assert.True(t, p.CanEditAttendance)
	assert.False(t, p.CanDeleteEmployee)
	assert.False(t, p.CanManageSettings)
	assert.False(t, p.CanManageRoles)
	assert.False(t, p.CanManageOrganization)
}

func TestEvaluateOutOfRangeRoleGetsViewOnly(t *testing.T) {
	for _, role := range []Role{Role(-1), Role(99)} {
		p := Evaluate(role)
		assert.Equal(t, Evaluate(RoleEmployee), p)
		assert.True(t, p.CanViewDashboard)
		assert.False(t, p.CanCreateEmployee)
		assert.False(t, p.CanEditAttendance)
	}
}

func TestParseRoleUnknownDegradesToEmployee(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleHR, ParseRole("hr"))
	assert.Equal(t, RoleEmployee, ParseRole("employee"))
	assert.Equal(t, RoleEmployee, ParseRole(""))
	assert.Equal(t, RoleEmployee, ParseRole("superuser"))
	assert.Equal(t, RoleEmployee, ParseRole("Admin"))
}

func TestLegacyIDRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleEmployee, RoleHR, RoleAdmin} {
		assert.Equal(t, role, RoleFromID(role.LegacyID()))
		assert.Equal(t, role, ParseRole(role.String()))
	}
	assert.Equal(t, RoleEmployee, RoleFromID(0))
	assert.Equal(t, RoleEmployee, RoleFromID(42))
}

func TestProjectionsMatchEvaluate(t *testing.T) {
	for _, role := range []Role{RoleEmployee, RoleHR, RoleAdmin, Role(99)} {
		p := Evaluate(role)
		assert.Equal(t, p.CanCreateEmployee, CanCreateEmployee(role))
		assert.Equal(t, p.CanEditAttendance, CanEditAttendance(role))
		assert.Equal(t, p.CanManageOrganization, IsAdmin(role))
	}
	assert.True(t, IsHR(RoleHR))
	assert.False(t, IsHR(RoleAdmin))
	assert.True(t, IsEmployee(RoleEmployee))
}

func TestIsValidRoleName(t *testing.T) {
	assert.True(t, IsValidRoleName("admin"))
	assert.True(t, IsValidRoleName("hr"))
	assert.True(t, IsValidRoleName("employee"))
	assert.False(t, IsValidRoleName(""))
	assert.False(t, IsValidRoleName("Admin"))
	assert.False(t, IsValidRoleName("manager"))
}
