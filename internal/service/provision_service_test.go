package service

import (
	"context"
	"errors"
	"testing"

	"attendance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateUserRequest() CreateUserRequest {
	return CreateUserRequest{
		Email:    "new@corp.test",
		Password: "s3cret!",
		FullName: "New Person",
		Role:     "employee",
		OrgID:    1,
		ClientID: 1,
	}
}

func TestCreateUserByHR(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	users := newFakeUserRepo()
	audit := &fakeAuditRepo{}
	svc := NewProvisionService(authAdmin, users, audit, &fakeTxManager{})

	res, err := svc.CreateUser(context.Background(), testCaller("hr", 1, 1), validCreateUserRequest())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "User created successfully in both auth and database", res.Message)
	require.Len(t, authAdmin.created, 1)
	assert.Equal(t, authAdmin.created[0].ID.String(), res.AuthUser.ID)
	assert.Equal(t, "new@corp.test", res.AuthUser.Email)

	// Profile keyed by the identity id, stamped into the requested tenant.
	stored := users.users[authAdmin.created[0].ID]
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.OrgID)
	assert.Equal(t, "employee", stored.Role)
	assert.True(t, stored.IsActive)

	assert.Equal(t, "employee", authAdmin.roleMeta[authAdmin.created[0].ID])
	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionCreateEmployee, audit.entries[0].ActionType)
	assert.Empty(t, authAdmin.deleted)
}

func TestCreateUserEmployeeCallerRejectedBeforeAnyWrite(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	users := newFakeUserRepo()
	svc := NewProvisionService(authAdmin, users, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.CreateUser(context.Background(), testCaller("employee", 1, 1), validCreateUserRequest())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, authAdmin.created)
	assert.Zero(t, users.upserts)
}

func TestCreateUserUnknownCallerRoleRejected(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	svc := NewProvisionService(authAdmin, newFakeUserRepo(), &fakeAuditRepo{}, &fakeTxManager{})

	caller := testCaller("employee", 1, 1)
	caller.Role = "definitely-not-a-role"

	_, err := svc.CreateUser(context.Background(), caller, validCreateUserRequest())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, authAdmin.created)
}

func TestCreateUserWithoutProfile(t *testing.T) {
	svc := NewProvisionService(newFakeAuthAdmin(), newFakeUserRepo(), &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.CreateUser(context.Background(), nil, validCreateUserRequest())
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestCreateUserValidatesRoleAndScope(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	svc := NewProvisionService(authAdmin, newFakeUserRepo(), &fakeAuditRepo{}, &fakeTxManager{})
	admin := testCaller("admin", 1, 1)

	req := validCreateUserRequest()
	req.Role = "manager"
	_, err := svc.CreateUser(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrValidation)

	req = validCreateUserRequest()
	req.ClientID = 0
	_, err = svc.CreateUser(context.Background(), admin, req)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, authAdmin.created)
}

func TestCreateUserRollsBackIdentityWhenProfileWriteFails(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	users := newFakeUserRepo()
	users.upsertErr = errors.New("users table unavailable")
	svc := NewProvisionService(authAdmin, users, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.CreateUser(context.Background(), testCaller("admin", 1, 1), validCreateUserRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, "users table unavailable")

	// The identity created in step one must not survive the failed profile
	// write.
	require.Len(t, authAdmin.created, 1)
	require.Len(t, authAdmin.deleted, 1)
	assert.Equal(t, authAdmin.created[0].ID, authAdmin.deleted[0])
}

func TestCreateUserReturnsOriginalErrorWhenCompensationFails(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	authAdmin.deleteErr = errors.New("auth store unreachable")
	users := newFakeUserRepo()
	users.upsertErr = errors.New("users table unavailable")
	svc := NewProvisionService(authAdmin, users, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.CreateUser(context.Background(), testCaller("admin", 1, 1), validCreateUserRequest())
	require.Error(t, err)
	assert.ErrorContains(t, err, "users table unavailable")
}

func TestCreateUserIdentityFailureIsValidationError(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	authAdmin.createErr = errors.New("email already registered")
	users := newFakeUserRepo()
	svc := NewProvisionService(authAdmin, users, &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.CreateUser(context.Background(), testCaller("admin", 1, 1), validCreateUserRequest())
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, users.upserts)
}

func TestCreateUserMetadataFailureIsNonFatal(t *testing.T) {
	authAdmin := newFakeAuthAdmin()
	authAdmin.metaErr = errors.New("metadata write failed")
	svc := NewProvisionService(authAdmin, newFakeUserRepo(), &fakeAuditRepo{}, &fakeTxManager{})

	res, err := svc.CreateUser(context.Background(), testCaller("admin", 1, 1), validCreateUserRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, authAdmin.deleted)
}
