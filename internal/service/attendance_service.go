package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"attendance/internal/model"
	"attendance/internal/rbac"
	"attendance/internal/repository"
	"attendance/internal/tenant"

	"gorm.io/gorm"
)

// --- DTOs ---

type CheckInRequest struct {
	LocationLat  *float64 `json:"locationlat"`
	LocationLong *float64 `json:"locationlong"`
}

type EditAttendanceRequest struct {
	CheckInTime  *time.Time `json:"checkintime"`
	CheckOutTime *time.Time `json:"checkouttime"`
	Status       string     `json:"status"`
	Remarks      string     `json:"remarks"`
}

type AttendanceResponse struct {
	AttendanceID uint   `json:"attendanceid"`
	Date         string `json:"date"`
	CheckInTime  string `json:"checkintime,omitempty"`
	CheckOutTime string `json:"checkouttime,omitempty"`
	Status       string `json:"status,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
	Duration     string `json:"duration,omitempty"`
}

// PresenceEvent is pushed to the live dashboard feed on every check-in and
// check-out.
type PresenceEvent struct {
	FullName string `json:"fullname"`
	Action   string `json:"action"` // "in" or "out"
	At       string `json:"at"`
}

// PresenceNotifier fans presence events out to connected clients. The
// websocket hub implements it; a nil notifier disables the feed.
type PresenceNotifier interface {
	BroadcastPresence(event PresenceEvent)
}

// AttendanceService owns the daily check-in/check-out cycle. Check-in is
// idempotent per (user, calendar date): the existing row is always looked up
// before a new one is created, so a second call the same day can never
// produce a duplicate open row.
type AttendanceService interface {
	CheckIn(ctx context.Context, caller *model.User, req CheckInRequest) (*AttendanceResponse, error)
	CheckOut(ctx context.Context, caller *model.User) (*AttendanceResponse, error)
	Today(ctx context.Context, caller *model.User) (*AttendanceResponse, error)
	History(ctx context.Context, caller *model.User, year int, month time.Month) ([]AttendanceResponse, error)
	Edit(ctx context.Context, caller *model.User, id uint, req EditAttendanceRequest) (*AttendanceResponse, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	audit    repository.AuditRepository
	txm      repository.TransactionManager
	notifier PresenceNotifier
	now      func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository, audit repository.AuditRepository, txm repository.TransactionManager, notifier PresenceNotifier) AttendanceService {
	return &attendanceService{repo: repo, audit: audit, txm: txm, notifier: notifier, now: time.Now}
}

func callerScope(caller *model.User) (tenant.Scope, error) {
	if caller == nil {
		return tenant.Scope{}, ErrNoProfile
	}
	scope := tenant.Scope{OrgID: caller.OrgID, ClientID: caller.ClientID}
	if err := tenant.Require(scope); err != nil {
		return tenant.Scope{}, err
	}
	return scope, nil
}

func toAttendanceResponse(att *model.Attendance) *AttendanceResponse {
	res := &AttendanceResponse{
		AttendanceID: att.AttendanceID,
		Date:         att.Date,
		Status:       att.Status,
		Remarks:      att.Remarks,
	}
	if att.CheckInTime != nil {
		res.CheckInTime = att.CheckInTime.Format(time.RFC3339)
	}
	if att.CheckOutTime != nil {
		res.CheckOutTime = att.CheckOutTime.Format(time.RFC3339)
	}
	if att.CheckInTime != nil && att.CheckOutTime != nil {
		d := att.CheckOutTime.Sub(*att.CheckInTime)
		res.Duration = fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return res
}

func (s *attendanceService) CheckIn(ctx context.Context, caller *model.User, req CheckInRequest) (*AttendanceResponse, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format("2006-01-02")

	existing, err := s.repo.GetForDate(ctx, scope, caller.UserID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.CheckOutTime == nil {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, ErrAlreadyCheckedOut
	}

	att := &model.Attendance{
		OrgID:        caller.OrgID,
		ClientID:     caller.ClientID,
		UserID:       caller.UserID,
		Date:         today,
		CheckInTime:  &now,
		LocationLat:  req.LocationLat,
		LocationLong: req.LocationLong,
		Type:         model.AttendanceTypeRegular,
		Method:       model.AttendanceMethodWeb,
		Status:       model.AttendanceStatusPresent,
		IsActive:     true,
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, att); createErr != nil {
			return createErr
		}
		return s.writeAudit(txCtx, caller, model.ActionCheckIn, att, nil)
	})
	if err != nil {
		return nil, err
	}

	s.notify(caller, "in", now)
	return toAttendanceResponse(att), nil
}

func (s *attendanceService) CheckOut(ctx context.Context, caller *model.User) (*AttendanceResponse, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format("2006-01-02")

	existing, err := s.repo.GetForDate(ctx, scope, caller.UserID, today)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotCheckedIn
	}
	if existing.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	var updated *model.Attendance
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.repo.Update(txCtx, scope, existing.AttendanceID, map[string]interface{}{
			"checkouttime": now,
		})
		if updateErr != nil {
			return updateErr
		}
		return s.writeAudit(txCtx, caller, model.ActionCheckOut, updated, existing)
	})
	if err != nil {
		return nil, err
	}

	s.notify(caller, "out", now)
	return toAttendanceResponse(updated), nil
}

func (s *attendanceService) Today(ctx context.Context, caller *model.User) (*AttendanceResponse, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}

	att, err := s.repo.GetForDate(ctx, scope, caller.UserID, s.now().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, nil
	}
	return toAttendanceResponse(att), nil
}

func (s *attendanceService) History(ctx context.Context, caller *model.User, year int, month time.Month) ([]AttendanceResponse, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.repo.ListRange(ctx, scope, caller.UserID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		res = append(res, *toAttendanceResponse(&records[i]))
	}
	return res, nil
}

// Edit is the administrative correction path. The capability check runs
// before any store access: a caller without edit-attendance never reaches
// the repository.
func (s *attendanceService) Edit(ctx context.Context, caller *model.User, id uint, req EditAttendanceRequest) (*AttendanceResponse, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}
	if !rbac.Evaluate(rbac.ParseRole(caller.Role)).CanEditAttendance {
		return nil, fmt.Errorf("%w: edit attendance", ErrForbidden)
	}

	before, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CheckInTime != nil {
		updates["checkintime"] = *req.CheckInTime
	}
	if req.CheckOutTime != nil {
		updates["checkouttime"] = *req.CheckOutTime
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Remarks != "" {
		updates["remarks"] = req.Remarks
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	var updated *model.Attendance
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.repo.Update(txCtx, scope, id, updates)
		if updateErr != nil {
			return updateErr
		}
		return s.writeAudit(txCtx, caller, model.ActionEditAttendance, updated, before)
	})
	if err != nil {
		return nil, err
	}
	return toAttendanceResponse(updated), nil
}

func (s *attendanceService) writeAudit(ctx context.Context, caller *model.User, action string, after, before *model.Attendance) error {
	newVal, _ := json.Marshal(after)
	entry := &model.AuditLog{
		OrgID:      caller.OrgID,
		ClientID:   caller.ClientID,
		UserID:     &caller.UserID,
		ActionType: action,
		Entity:     model.Attendance{}.TableName(),
		RecordID:   fmt.Sprintf("%d", after.AttendanceID),
		NewValue:   string(newVal),
	}
	if before != nil {
		oldVal, _ := json.Marshal(before)
		entry.OldValue = string(oldVal)
	}
	return s.audit.Create(ctx, entry)
}

func (s *attendanceService) notify(caller *model.User, action string, at time.Time) {
	if s.notifier == nil {
		return
	}
	s.notifier.BroadcastPresence(PresenceEvent{
		FullName: caller.FullName,
		Action:   action,
		At:       at.Format(time.RFC3339),
	})
}
