package repository

import (
	"context"

	"attendance/internal/model"
	"attendance/internal/tenant"

	"gorm.io/gorm"
)

// AuditRepository persists the who/what/when trail. Writes participate in
// the caller's transaction via GetDB.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, scope tenant.Scope, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	if err := tenant.Require(tenant.Scope{OrgID: entry.OrgID, ClientID: entry.ClientID}); err != nil {
		return err
	}
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, scope tenant.Scope, page, limit int) ([]model.AuditLog, int64, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, 0, err
	}

	base := tenant.Scoped(r.db.WithContext(ctx).Model(&model.AuditLog{}), scope)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLog
	offset := (page - 1) * limit
	err := base.Preload("User").
		Order("createdat DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
