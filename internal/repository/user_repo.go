package repository

import (
	"context"

	"attendance/internal/model"
	"attendance/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository is the data access surface for employee profiles. Every
// read excludes inactive rows unless the caller explicitly asks for the
// administrative listing, and every tenant-bound method rejects partial
// scope.
type UserRepository interface {
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, scope tenant.Scope, includeInactive bool, page, limit int) ([]model.User, int64, error)
	CountActive(ctx context.Context, scope tenant.Scope) (int64, error)
	Upsert(ctx context.Context, user *model.User) error
	Update(ctx context.Context, scope tenant.Scope, user *model.User) error
	Deactivate(ctx context.Context, scope tenant.Scope, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetActiveByEmail serves the identity resolver. The lookup is unscoped by
// design: the tenant pair is learned FROM the profile, not known before it.
func (r *userRepository) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	q := tenant.Active(r.db.WithContext(ctx)).
		Preload("Org").Preload("Client").Preload("Department").Preload("Branch")
	if err := q.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*model.User, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var user model.User
	q := tenant.Active(tenant.Scoped(r.db.WithContext(ctx), scope)).
		Preload("Department").Preload("Branch")
	if err := q.First(&user, "userid = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, scope tenant.Scope, includeInactive bool, page, limit int) ([]model.User, int64, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, 0, err
	}

	base := tenant.Scoped(r.db.WithContext(ctx).Model(&model.User{}), scope)
	if !includeInactive {
		base = tenant.Active(base)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	offset := (page - 1) * limit
	err := base.Preload("Department").Preload("Branch").
		Order("fullname ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CountActive(ctx context.Context, scope tenant.Scope) (int64, error) {
	if err := tenant.Require(scope); err != nil {
		return 0, err
	}
	var total int64
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx).Model(&model.User{}), scope)).
		Count(&total).Error
	return total, err
}

// Upsert inserts or refreshes a profile keyed by the login identity UUID.
// Used by provisioning, which already verified the caller's capability.
func (r *userRepository) Upsert(ctx context.Context, user *model.User) error {
	if err := tenant.Require(tenant.Scope{OrgID: user.OrgID, ClientID: user.ClientID}); err != nil {
		return err
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "userid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "fullname", "role", "orgid", "clientid",
			"departmentid", "branchid", "status", "isactive", "updatedat",
		}),
	}).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, scope tenant.Scope, user *model.User) error {
	if err := tenant.Require(scope); err != nil {
		return err
	}
	if user.OrgID != scope.OrgID || user.ClientID != scope.ClientID {
		return tenant.ErrInvalidScope
	}
	return GetDB(ctx, r.db).Save(user).Error
}

// Deactivate is the soft delete: the row survives but leaves every normal
// read path.
func (r *userRepository) Deactivate(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	if err := tenant.Require(scope); err != nil {
		return err
	}
	return tenant.Scoped(GetDB(ctx, r.db).Model(&model.User{}), scope).
		Where("userid = ?", id).
		Update("isactive", false).Error
}
