package service

import (
	"context"
	"fmt"
	"log"

	"attendance/internal/model"
	"attendance/internal/rbac"
	"attendance/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

// CreateUserRequest is the privileged user-creation payload: it carries the
// target tenant explicitly because admins provision into their own scope.
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FullName     string `json:"fullname" binding:"required"`
	Role         string `json:"role" binding:"required"`
	OrgID        int    `json:"orgid" binding:"required"`
	ClientID     int    `json:"clientid" binding:"required"`
	DepartmentID *int   `json:"departmentid"`
	BranchID     *int   `json:"branchid"`
}

type CreatedAuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CreateUserResponse struct {
	Success  bool            `json:"success"`
	AuthUser CreatedAuthUser `json:"authUser"`
	DBUser   *model.User     `json:"dbUser"`
	Message  string          `json:"message"`
}

// AuthAdmin is the elevated-credential side of the auth collaborator:
// creating, stamping and deleting login identities.
type AuthAdmin interface {
	CreateIdentity(ctx context.Context, email, password string) (*model.LoginIdentity, error)
	UpdateRoleMetadata(ctx context.Context, id uuid.UUID, role string) error
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
}

// ProvisionService creates a login identity bound to a profile row. The two
// writes hit different owners (auth store, users table), so failure after
// the identity exists triggers a compensating delete: no orphaned identity
// may survive without a profile.
type ProvisionService interface {
	CreateUser(ctx context.Context, caller *model.User, req CreateUserRequest) (*CreateUserResponse, error)
}

type provisionService struct {
	authAdmin AuthAdmin
	users     repository.UserRepository
	audit     repository.AuditRepository
	txm       repository.TransactionManager
}

func NewProvisionService(authAdmin AuthAdmin, users repository.UserRepository, audit repository.AuditRepository, txm repository.TransactionManager) ProvisionService {
	return &provisionService{authAdmin: authAdmin, users: users, audit: audit, txm: txm}
}

func (s *provisionService) CreateUser(ctx context.Context, caller *model.User, req CreateUserRequest) (*CreateUserResponse, error) {
	// The caller's stored role decides, not the token: an employee with a
	// stale elevated token still gets rejected here, before any write.
	if caller == nil {
		return nil, ErrNoProfile
	}
	if !rbac.Evaluate(rbac.ParseRole(caller.Role)).CanCreateEmployee {
		return nil, fmt.Errorf("%w: create employee", ErrForbidden)
	}

	if !rbac.IsValidRoleName(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if req.OrgID <= 0 || req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: missing tenant scope", ErrValidation)
	}

	// 1) Create the login identity.
	ident, err := s.authAdmin.CreateIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// 2) Stamp the app-level role metadata. Non-fatal: the profile row is
	// the authoritative role source.
	if metaErr := s.authAdmin.UpdateRoleMetadata(ctx, ident.ID, req.Role); metaErr != nil {
		log.Printf("provision: failed to stamp role metadata for %s: %v", req.Email, metaErr)
	}

	// 3) Upsert the profile keyed by the new identity, with its audit entry.
	user := &model.User{
		UserID:       ident.ID,
		OrgID:        req.OrgID,
		ClientID:     req.ClientID,
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		BranchID:     req.BranchID,
		Status:       "Active",
		IsActive:     true,
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if upsertErr := s.users.Upsert(txCtx, user); upsertErr != nil {
			return upsertErr
		}
		return s.audit.Create(txCtx, &model.AuditLog{
			OrgID:      caller.OrgID,
			ClientID:   caller.ClientID,
			UserID:     &caller.UserID,
			ActionType: model.ActionCreateEmployee,
			Entity:     model.User{}.TableName(),
			RecordID:   user.UserID.String(),
			Remarks:    fmt.Sprintf("provisioned %s as %s", req.Email, req.Role),
		})
	})
	if err != nil {
		// Compensating action: the identity must not outlive the failed
		// profile write. A failed compensation is a fatal inconsistency and
		// must be visible out of band.
		if delErr := s.authAdmin.DeleteIdentity(ctx, ident.ID); delErr != nil {
			log.Printf("provision: FATAL inconsistency: profile upsert failed (%v) and compensating identity delete also failed (%v); identity %s is orphaned", err, delErr, ident.ID)
		}
		return nil, err
	}

	return &CreateUserResponse{
		Success:  true,
		AuthUser: CreatedAuthUser{ID: ident.ID.String(), Email: ident.Email},
		DBUser:   user,
		Message:  "User created successfully in both auth and database",
	}, nil
}
