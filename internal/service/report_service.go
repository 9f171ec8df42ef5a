package service

import (
	"context"
	"fmt"
	"time"

	"attendance/internal/model"
	"attendance/internal/rbac"
	"attendance/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ActivityEntry struct {
	FullName string `json:"fullname"`
	Action   string `json:"action"` // "in" or "out"
	At       string `json:"at"`
}

type DashboardStats struct {
	TotalEmployees int64           `json:"total_employees"`
	PresentToday   int64           `json:"present_today"`
	AbsentToday    int64           `json:"absent_today"`
	AttendanceRate string          `json:"attendance_rate"` // percentage, one decimal place
	RecentActivity []ActivityEntry `json:"recent_activity"`
}

type MonthlySummary struct {
	Year        int                  `json:"year"`
	Month       int                  `json:"month"`
	DaysPresent int                  `json:"days_present"`
	WorkedHours string               `json:"worked_hours"`
	Records     []AttendanceResponse `json:"records"`
}

// ReportService aggregates attendance into the dashboard and monthly report
// views. Percentages and hour totals go through decimal so repeated
// summation does not drift.
type ReportService interface {
	Dashboard(ctx context.Context, caller *model.User) (*DashboardStats, error)
	Monthly(ctx context.Context, caller *model.User, year int, month time.Month) (*MonthlySummary, error)
}

type reportService struct {
	users      repository.UserRepository
	attendance repository.AttendanceRepository
	now        func() time.Time
}

func NewReportService(users repository.UserRepository, attendance repository.AttendanceRepository) ReportService {
	return &reportService{users: users, attendance: attendance, now: time.Now}
}

func (s *reportService) Dashboard(ctx context.Context, caller *model.User) (*DashboardStats, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}
	if !rbac.Evaluate(rbac.ParseRole(caller.Role)).CanViewDashboard {
		return nil, fmt.Errorf("%w: view dashboard", ErrForbidden)
	}

	total, err := s.users.CountActive(ctx, scope)
	if err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	present, err := s.attendance.CountForDate(ctx, scope, today)
	if err != nil {
		return nil, err
	}

	absent := total - present
	if absent < 0 {
		absent = 0
	}

	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(present).
			Div(decimal.NewFromInt(total)).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	recent, err := s.attendance.RecentActivity(ctx, scope, 10)
	if err != nil {
		return nil, err
	}

	activity := make([]ActivityEntry, 0, len(recent))
	for i := range recent {
		entry := ActivityEntry{Action: "in"}
		if recent[i].User != nil {
			entry.FullName = recent[i].User.FullName
		}
		at := recent[i].CheckInTime
		if recent[i].CheckOutTime != nil {
			entry.Action = "out"
			at = recent[i].CheckOutTime
		}
		if at != nil {
			entry.At = at.Format(time.RFC3339)
		}
		activity = append(activity, entry)
	}

	return &DashboardStats{
		TotalEmployees: total,
		PresentToday:   present,
		AbsentToday:    absent,
		AttendanceRate: rate.StringFixed(1),
		RecentActivity: activity,
	}, nil
}

func (s *reportService) Monthly(ctx context.Context, caller *model.User, year int, month time.Month) (*MonthlySummary, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, err
	}
	if !rbac.Evaluate(rbac.ParseRole(caller.Role)).CanViewReports {
		return nil, fmt.Errorf("%w: view reports", ErrForbidden)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.attendance.ListRange(ctx, scope, caller.UserID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	worked := decimal.Zero
	daysPresent := 0
	res := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.CheckInTime != nil {
			daysPresent++
		}
		if rec.CheckInTime != nil && rec.CheckOutTime != nil {
			hours := decimal.NewFromFloat(rec.CheckOutTime.Sub(*rec.CheckInTime).Hours())
			worked = worked.Add(hours)
		}
		res = append(res, *toAttendanceResponse(rec))
	}

	return &MonthlySummary{
		Year:        year,
		Month:       int(month),
		DaysPresent: daysPresent,
		WorkedHours: worked.Round(2).String(),
		Records:     res,
	}, nil
}
