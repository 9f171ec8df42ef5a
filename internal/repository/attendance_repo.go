package repository

import (
	"context"
	"errors"

	"attendance/internal/model"
	"attendance/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRepository accesses the per-day attendance rows. All methods are
// tenant-scoped; creation expects the caller to have stamped org, client and
// user already (the service does this, never the transport layer).
type AttendanceRepository interface {
	GetForDate(ctx context.Context, scope tenant.Scope, userID uuid.UUID, date string) (*model.Attendance, error)
	ListRange(ctx context.Context, scope tenant.Scope, userID uuid.UUID, from, to string) ([]model.Attendance, error)
	CountForDate(ctx context.Context, scope tenant.Scope, date string) (int64, error)
	RecentActivity(ctx context.Context, scope tenant.Scope, limit int) ([]model.Attendance, error)
	Create(ctx context.Context, att *model.Attendance) error
	GetByID(ctx context.Context, scope tenant.Scope, id uint) (*model.Attendance, error)
	Update(ctx context.Context, scope tenant.Scope, id uint, updates map[string]interface{}) (*model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// GetForDate returns the day's row, or (nil, nil) when the user has not
// checked in yet. Check-in idempotency depends on this lookup.
func (r *attendanceRepository) GetForDate(ctx context.Context, scope tenant.Scope, userID uuid.UUID, date string) (*model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var att model.Attendance
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx), scope)).
		Where("userid = ? AND date = ?", userID, date).
		First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) ListRange(ctx context.Context, scope tenant.Scope, userID uuid.UUID, from, to string) ([]model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var records []model.Attendance
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx), scope)).
		Where("userid = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) CountForDate(ctx context.Context, scope tenant.Scope, date string) (int64, error) {
	if err := tenant.Require(scope); err != nil {
		return 0, err
	}
	var total int64
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx).Model(&model.Attendance{}), scope)).
		Where("date = ? AND checkintime IS NOT NULL", date).
		Count(&total).Error
	return total, err
}

func (r *attendanceRepository) RecentActivity(ctx context.Context, scope tenant.Scope, limit int) ([]model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var records []model.Attendance
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx), scope)).
		Preload("User").
		Order("updatedat DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) Create(ctx context.Context, att *model.Attendance) error {
	if err := tenant.Require(tenant.Scope{OrgID: att.OrgID, ClientID: att.ClientID}); err != nil {
		return err
	}
	return GetDB(ctx, r.db).Create(att).Error
}

func (r *attendanceRepository) GetByID(ctx context.Context, scope tenant.Scope, id uint) (*model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var att model.Attendance
	err := tenant.Active(tenant.Scoped(r.db.WithContext(ctx), scope)).
		First(&att, "attendanceid = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// Update patches mutable fields only; the tenant stamps and userid are not
// part of any update map built by the services.
func (r *attendanceRepository) Update(ctx context.Context, scope tenant.Scope, id uint, updates map[string]interface{}) (*model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	db := GetDB(ctx, r.db)
	result := tenant.Scoped(db.Model(&model.Attendance{}), scope).
		Where("attendanceid = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var att model.Attendance
	if err := tenant.Scoped(db, scope).First(&att, "attendanceid = ?", id).Error; err != nil {
		return nil, err
	}
	return &att, nil
}
