package service

import (
	"context"
	"errors"

	"attendance/internal/model"
	"attendance/internal/repository"

	"gorm.io/gorm"
)

// OrgService serves the tenant hierarchy and role reference data consumed by
// the employee and sign-up forms. Clients and organizations are the tenant
// roots; departments and branches come back scoped to the caller's tenant.
type OrgService interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	GetOrganization(ctx context.Context, orgID int) (*model.Organization, error)
	ListDepartments(ctx context.Context, caller *model.User) ([]model.Department, error)
	ListBranches(ctx context.Context, caller *model.User) ([]model.Branch, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
}

type orgService struct {
	repo repository.OrgRepository
}

func NewOrgService(repo repository.OrgRepository) OrgService {
	return &orgService{repo: repo}
}

func (s *orgService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *orgService) GetOrganization(ctx context.Context, orgID int) (*model.Organization, error) {
	org, err := s.repo.GetOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *orgService) ListDepartments(ctx context.Context, caller *model.User) ([]model.Department, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDepartments(ctx, scope)
}

func (s *orgService) ListBranches(ctx context.Context, caller *model.User) ([]model.Branch, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBranches(ctx, scope)
}

func (s *orgService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.repo.ListRoles(ctx)
}
