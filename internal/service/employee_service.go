package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"attendance/internal/model"
	"attendance/internal/rbac"
	"attendance/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type UpdateEmployeeRequest struct {
	FullName     string `json:"fullname"`
	Role         string `json:"role"`
	DepartmentID *int   `json:"departmentid"`
	BranchID     *int   `json:"branchid"`
	Status       string `json:"status"`
}

type EmployeeResponse struct {
	UserID       string `json:"userid"`
	FullName     string `json:"fullname"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID *int   `json:"departmentid,omitempty"`
	Department   string `json:"department,omitempty"`
	BranchID     *int   `json:"branchid,omitempty"`
	Branch       string `json:"branch,omitempty"`
	Status       string `json:"status"`
	IsActive     bool   `json:"isactive"`
	CreatedAt    string `json:"createdat"`
}

// EmployeeService is the role-gated employee management surface. Every
// operation derives its capability requirement from the evaluator and checks
// it before touching the repository; the tenant scope is always the
// caller's own.
type EmployeeService interface {
	List(ctx context.Context, caller *model.User, includeInactive bool, page, limit int) ([]EmployeeResponse, int64, error)
	Get(ctx context.Context, caller *model.User, id uuid.UUID) (*EmployeeResponse, error)
	Update(ctx context.Context, caller *model.User, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error)
	Deactivate(ctx context.Context, caller *model.User, id uuid.UUID) error
}

type employeeService struct {
	repo  repository.UserRepository
	audit repository.AuditRepository
	txm   repository.TransactionManager
}

func NewEmployeeService(repo repository.UserRepository, audit repository.AuditRepository, txm repository.TransactionManager) EmployeeService {
	return &employeeService{repo: repo, audit: audit, txm: txm}
}

func toEmployeeResponse(user *model.User) *EmployeeResponse {
	res := &EmployeeResponse{
		UserID:       user.UserID.String(),
		FullName:     user.FullName,
		Email:        user.Email,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		BranchID:     user.BranchID,
		Status:       user.Status,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.Department != nil {
		res.Department = user.Department.DepartmentName
	}
	if user.Branch != nil {
		res.Branch = user.Branch.BranchName
	}
	return res
}

func (s *employeeService) List(ctx context.Context, caller *model.User, includeInactive bool, page, limit int) ([]EmployeeResponse, int64, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, 0, err
	}
	perms := rbac.Evaluate(rbac.ParseRole(caller.Role))
	if !perms.CanViewEmployees {
		return nil, 0, fmt.Errorf("%w: view employees", ErrForbidden)
	}
	// Inactive rows are invisible outside the administrative listing.
	if includeInactive && !perms.CanManageSettings {
		return nil, 0, fmt.Errorf("%w: list inactive employees", ErrForbidden)
	}

	users, total, err := s.repo.List(ctx, scope, includeInactive, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]EmployeeResponse, 0, len(users))
	for i := range users {
		res = append(res, *toEmployeeResponse(&users[i]))
	}
	return res, total, nil
}

func (s *employeeService) Get(ctx context.Context, caller *model.User, id uuid.UUID) (*EmployeeResponse, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}
	if !rbac.Evaluate(rbac.ParseRole(caller.Role)).CanViewEmployees {
		return nil, fmt.Errorf("%w: view employees", ErrForbidden)
	}

	user, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toEmployeeResponse(user), nil
}

func (s *employeeService) Update(ctx context.Context, caller *model.User, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}
	perms := rbac.Evaluate(rbac.ParseRole(caller.Role))
	if !perms.CanEditEmployee {
		return nil, fmt.Errorf("%w: edit employee", ErrForbidden)
	}
	if req.Role != "" && !perms.CanManageRoles {
		return nil, fmt.Errorf("%w: change role", ErrForbidden)
	}
	if req.Role != "" && !rbac.IsValidRoleName(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	user, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	beforeVal, _ := json.Marshal(user)

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}
	if req.BranchID != nil {
		user.BranchID = req.BranchID
	}
	if req.Status != "" {
		user.Status = req.Status
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.repo.Update(txCtx, scope, user); updateErr != nil {
			return updateErr
		}
		afterVal, _ := json.Marshal(user)
		return s.audit.Create(txCtx, &model.AuditLog{
			OrgID:      caller.OrgID,
			ClientID:   caller.ClientID,
			UserID:     &caller.UserID,
			ActionType: model.ActionUpdateEmployee,
			Entity:     model.User{}.TableName(),
			RecordID:   user.UserID.String(),
			OldValue:   string(beforeVal),
			NewValue:   string(afterVal),
		})
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(user), nil
}

// Deactivate is admin-exclusive and soft: the profile row stays for audit
// history but vanishes from every normal read.
func (s *employeeService) Deactivate(ctx context.Context, caller *model.User, id uuid.UUID) error {
	scope, err := callerScope(caller)
	if err != nil {
		return err
	}
	if !rbac.Evaluate(rbac.ParseRole(caller.Role)).CanDeleteEmployee {
		return fmt.Errorf("%w: delete employee", ErrForbidden)
	}

	user, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if deactErr := s.repo.Deactivate(txCtx, scope, id); deactErr != nil {
			return deactErr
		}
		beforeVal, _ := json.Marshal(user)
		return s.audit.Create(txCtx, &model.AuditLog{
			OrgID:      caller.OrgID,
			ClientID:   caller.ClientID,
			UserID:     &caller.UserID,
			ActionType: model.ActionDeactivateEmployee,
			Entity:     model.User{}.TableName(),
			RecordID:   id.String(),
			OldValue:   string(beforeVal),
		})
	})
}
