package service

import (
	"context"
	"testing"
	"time"

	"attendance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendanceFixture(t *testing.T, at time.Time) (*attendanceService, *fakeAttendanceRepo, *fakeAuditRepo, *fakeNotifier) {
	t.Helper()
	repo := newFakeAttendanceRepo()
	audit := &fakeAuditRepo{}
	notifier := &fakeNotifier{}
	svc := NewAttendanceService(repo, audit, &fakeTxManager{}, notifier).(*attendanceService)
	svc.now = func() time.Time { return at }
	return svc, repo, audit, notifier
}

func TestCheckInCreatesRowAndNotifies(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc, repo, audit, notifier := newAttendanceFixture(t, at)
	caller := testCaller("employee", 1, 1)

	res, err := svc.CheckIn(context.Background(), caller, CheckInRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", res.Date)
	assert.Equal(t, at.Format(time.RFC3339), res.CheckInTime)
	assert.Empty(t, res.CheckOutTime)

	row := repo.rows[res.AttendanceID]
	require.NotNil(t, row)
	assert.Equal(t, caller.OrgID, row.OrgID)
	assert.Equal(t, caller.ClientID, row.ClientID)
	assert.Equal(t, model.AttendanceStatusPresent, row.Status)
	assert.True(t, row.IsActive)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionCheckIn, audit.entries[0].ActionType)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "in", notifier.events[0].Action)
	assert.Equal(t, caller.FullName, notifier.events[0].FullName)
}

func TestCheckInTwiceSameDayIsRejected(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc, repo, _, _ := newAttendanceFixture(t, at)
	caller := testCaller("employee", 1, 1)

	_, err := svc.CheckIn(context.Background(), caller, CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), caller, CheckInRequest{})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Len(t, repo.rows, 1)
}

func TestCheckInAfterCheckOutIsRejected(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc, _, _, _ := newAttendanceFixture(t, at)
	caller := testCaller("employee", 1, 1)

	_, err := svc.CheckIn(context.Background(), caller, CheckInRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return at.Add(8 * time.Hour) }
	_, err = svc.CheckOut(context.Background(), caller)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), caller, CheckInRequest{})
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc, _, _, _ := newAttendanceFixture(t, time.Now())
	caller := testCaller("employee", 1, 1)

	_, err := svc.CheckOut(context.Background(), caller)
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestCheckOutClosesRowWithDuration(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc, _, audit, notifier := newAttendanceFixture(t, at)
	caller := testCaller("employee", 1, 1)

	_, err := svc.CheckIn(context.Background(), caller, CheckInRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return at.Add(7*time.Hour + 30*time.Minute) }
	res, err := svc.CheckOut(context.Background(), caller)
	require.NoError(t, err)

	assert.Equal(t, "7h 30m", res.Duration)
	assert.Len(t, audit.entries, 2)
	require.Len(t, notifier.events, 2)
	assert.Equal(t, "out", notifier.events[1].Action)

	_, err = svc.CheckOut(context.Background(), caller)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCheckInRequiresProfile(t *testing.T) {
	svc, _, _, _ := newAttendanceFixture(t, time.Now())

	_, err := svc.CheckIn(context.Background(), nil, CheckInRequest{})
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestTodayReturnsNilWhenNoRecord(t *testing.T) {
	svc, _, _, _ := newAttendanceFixture(t, time.Now())
	caller := testCaller("employee", 1, 1)

	res, err := svc.Today(context.Background(), caller)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHistoryStaysInsideCallerTenant(t *testing.T) {
	at := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	svc, repo, _, _ := newAttendanceFixture(t, at)
	caller := testCaller("employee", 1, 1)

	_, err := svc.CheckIn(context.Background(), caller, CheckInRequest{})
	require.NoError(t, err)

	// Same date, different tenant.
	in := at
	repo.rows[99] = &model.Attendance{
		AttendanceID: 99, OrgID: 2, ClientID: 2, UserID: caller.UserID,
		Date: "2026-08-10", CheckInTime: &in, IsActive: true,
	}

	records, err := svc.History(context.Background(), caller, 2026, time.August)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEditRejectedBeforeStoreAccess(t *testing.T) {
	svc, repo, _, _ := newAttendanceFixture(t, time.Now())
	caller := testCaller("employee", 1, 1)

	_, err := svc.Edit(context.Background(), caller, 1, EditAttendanceRequest{Status: model.AttendanceStatusLate})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, repo.getCalls)
}

func TestEditAppliesCorrection(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc, _, audit, _ := newAttendanceFixture(t, at)
	employee := testCaller("employee", 1, 1)
	hr := testCaller("hr", 1, 1)

	res, err := svc.CheckIn(context.Background(), employee, CheckInRequest{})
	require.NoError(t, err)

	edited, err := svc.Edit(context.Background(), hr, res.AttendanceID, EditAttendanceRequest{
		Status:  model.AttendanceStatusLate,
		Remarks: "arrived after stand-up",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceStatusLate, edited.Status)
	assert.Equal(t, "arrived after stand-up", edited.Remarks)

	last := audit.entries[len(audit.entries)-1]
	assert.Equal(t, model.ActionEditAttendance, last.ActionType)
	assert.NotEmpty(t, last.OldValue)
	assert.NotEmpty(t, last.NewValue)
}

func TestEditWithNoFields(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	svc, _, _, _ := newAttendanceFixture(t, at)
	employee := testCaller("employee", 1, 1)
	hr := testCaller("hr", 1, 1)

	res, err := svc.CheckIn(context.Background(), employee, CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.Edit(context.Background(), hr, res.AttendanceID, EditAttendanceRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEditMissingRecord(t *testing.T) {
	svc, _, _, _ := newAttendanceFixture(t, time.Now())
	hr := testCaller("hr", 1, 1)

	_, err := svc.Edit(context.Background(), hr, 404, EditAttendanceRequest{Status: model.AttendanceStatusAbsent})
	assert.ErrorIs(t, err, ErrNotFound)
}
