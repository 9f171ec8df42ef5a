package service

import (
	"context"
	"testing"

	"attendance/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEmployee(repo *fakeUserRepo, org, client int, name string) *model.User {
	u := &model.User{
		UserID:   uuid.New(),
		OrgID:    org,
		ClientID: client,
		FullName: name,
		Email:    name + "@corp.test",
		Role:     "employee",
		Status:   "Active",
		IsActive: true,
	}
	repo.users[u.UserID] = u
	return u
}

func TestListOnlyReturnsCallerTenant(t *testing.T) {
	repo := newFakeUserRepo()
	seedEmployee(repo, 1, 1, "alice")
	seedEmployee(repo, 1, 1, "bob")
	seedEmployee(repo, 2, 2, "mallory")
	svc := NewEmployeeService(repo, &fakeAuditRepo{}, &fakeTxManager{})

	res, total, err := svc.List(context.Background(), testCaller("employee", 1, 1), false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range res {
		assert.NotEqual(t, "mallory", e.FullName)
	}
}

func TestListInactiveRequiresManageSettings(t *testing.T) {
	repo := newFakeUserRepo()
	seedEmployee(repo, 1, 1, "alice")
	gone := seedEmployee(repo, 1, 1, "carol")
	gone.IsActive = false
	svc := NewEmployeeService(repo, &fakeAuditRepo{}, &fakeTxManager{})

	_, _, err := svc.List(context.Background(), testCaller("hr", 1, 1), true, 1, 20)
	assert.ErrorIs(t, err, ErrForbidden)

	res, total, err := svc.List(context.Background(), testCaller("admin", 1, 1), true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, res, 2)

	// Default listing hides the deactivated row for everyone.
	_, total, err = svc.List(context.Background(), testCaller("admin", 1, 1), false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetCrossTenantIsNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	foreign := seedEmployee(repo, 2, 2, "mallory")
	svc := NewEmployeeService(repo, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.Get(context.Background(), testCaller("hr", 1, 1), foreign.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRequiresEditCapability(t *testing.T) {
	repo := newFakeUserRepo()
	target := seedEmployee(repo, 1, 1, "alice")
	svc := NewEmployeeService(repo, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.Update(context.Background(), testCaller("employee", 1, 1), target.UserID, UpdateEmployeeRequest{FullName: "Alice B"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "alice", repo.users[target.UserID].FullName)
}

func TestUpdateRoleChangeIsAdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	target := seedEmployee(repo, 1, 1, "alice")
	audit := &fakeAuditRepo{}
	svc := NewEmployeeService(repo, audit, &fakeTxManager{})

	// HR can edit profile fields but not roles.
	_, err := svc.Update(context.Background(), testCaller("hr", 1, 1), target.UserID, UpdateEmployeeRequest{Role: "hr"})
	assert.ErrorIs(t, err, ErrForbidden)

	res, err := svc.Update(context.Background(), testCaller("admin", 1, 1), target.UserID, UpdateEmployeeRequest{Role: "hr"})
	require.NoError(t, err)
	assert.Equal(t, "hr", res.Role)

	last := audit.entries[len(audit.entries)-1]
	assert.Equal(t, model.ActionUpdateEmployee, last.ActionType)
	assert.NotEmpty(t, last.OldValue)
	assert.NotEmpty(t, last.NewValue)
}

func TestUpdateRejectsUnknownRoleName(t *testing.T) {
	repo := newFakeUserRepo()
	target := seedEmployee(repo, 1, 1, "alice")
	svc := NewEmployeeService(repo, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.Update(context.Background(), testCaller("admin", 1, 1), target.UserID, UpdateEmployeeRequest{Role: "superuser"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "employee", repo.users[target.UserID].Role)
}

func TestDeactivateIsAdminExclusiveAndSoft(t *testing.T) {
	repo := newFakeUserRepo()
	target := seedEmployee(repo, 1, 1, "alice")
	audit := &fakeAuditRepo{}
	svc := NewEmployeeService(repo, audit, &fakeTxManager{})

	err := svc.Deactivate(context.Background(), testCaller("hr", 1, 1), target.UserID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.True(t, repo.users[target.UserID].IsActive)

	err = svc.Deactivate(context.Background(), testCaller("admin", 1, 1), target.UserID)
	require.NoError(t, err)

	// Soft delete: the row survives but leaves every normal read.
	stored := repo.users[target.UserID]
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)

	last := audit.entries[len(audit.entries)-1]
	assert.Equal(t, model.ActionDeactivateEmployee, last.ActionType)
}

func TestDeactivateMissingEmployee(t *testing.T) {
	svc := NewEmployeeService(newFakeUserRepo(), &fakeAuditRepo{}, &fakeTxManager{})

	err := svc.Deactivate(context.Background(), testCaller("admin", 1, 1), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
