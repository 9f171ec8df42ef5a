package repository

import (
	"context"

	"attendance/internal/model"
	"attendance/internal/tenant"

	"gorm.io/gorm"
)

// OrgRepository reads the tenant hierarchy and reference data backing the
// employee forms. Clients and organizations are the tenant roots themselves
// and are read by id; departments and branches are tenant-owned and scoped.
type OrgRepository interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, clientID int) (*model.Client, error)
	GetOrganization(ctx context.Context, orgID int) (*model.Organization, error)
	ListDepartments(ctx context.Context, scope tenant.Scope) ([]model.Department, error)
	ListBranches(ctx context.Context, scope tenant.Scope) ([]model.Branch, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
}

type orgRepository struct {
	db *gorm.DB
}

func NewOrgRepository(db *gorm.DB) OrgRepository {
	return &orgRepository{db: db}
}

func (r *orgRepository) ListClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Preload("Org").Order("clientname ASC").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *orgRepository) GetClient(ctx context.Context, clientID int) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Preload("Org").First(&client, "clientid = ?", clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *orgRepository) GetOrganization(ctx context.Context, orgID int) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "orgid = ?", orgID).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *orgRepository) ListDepartments(ctx context.Context, scope tenant.Scope) ([]model.Department, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var departments []model.Department
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx), scope)).
		Order("departmentname ASC").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *orgRepository) ListBranches(ctx context.Context, scope tenant.Scope) ([]model.Branch, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var branches []model.Branch
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx), scope)).
		Order("branchname ASC").
		Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *orgRepository) ListRoles(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := tenant.Active(r.db.WithContext(ctx)).Order("roleid ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
