package service

import (
	"context"
	"strings"
	"time"

	"attendance/internal/model"
	"attendance/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory doubles for the repository layer. They enforce the same scope
// contract as the real ones so cross-tenant reads fail the same way.

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeAuditRepo struct {
	entries   []model.AuditLog
	createErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := tenant.Require(tenant.Scope{OrgID: entry.OrgID, ClientID: entry.ClientID}); err != nil {
		return err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, scope tenant.Scope, page, limit int) ([]model.AuditLog, int64, error) {
	var out []model.AuditLog
	for _, e := range f.entries {
		if e.OrgID == scope.OrgID && e.ClientID == scope.ClientID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	users     map[uuid.UUID]*model.User
	upserts   int
	upsertErr error
	active    int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, scope tenant.Scope, id uuid.UUID) (*model.User, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok || u.OrgID != scope.OrgID || u.ClientID != scope.ClientID || !u.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(ctx context.Context, scope tenant.Scope, includeInactive bool, page, limit int) ([]model.User, int64, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, 0, err
	}
	var out []model.User
	for _, u := range f.users {
		if u.OrgID != scope.OrgID || u.ClientID != scope.ClientID {
			continue
		}
		if !u.IsActive && !includeInactive {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) CountActive(ctx context.Context, scope tenant.Scope) (int64, error) {
	if err := tenant.Require(scope); err != nil {
		return 0, err
	}
	if f.active > 0 {
		return f.active, nil
	}
	var n int64
	for _, u := range f.users {
		if u.OrgID == scope.OrgID && u.ClientID == scope.ClientID && u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *model.User) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *user
	f.users[user.UserID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, scope tenant.Scope, user *model.User) error {
	if _, err := f.GetByID(ctx, scope, user.UserID); err != nil {
		return err
	}
	cp := *user
	f.users[user.UserID] = &cp
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, scope tenant.Scope, id uuid.UUID) error {
	u, err := f.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	u.IsActive = false
	f.users[id] = u
	return nil
}

type fakeAttendanceRepo struct {
	rows      map[uint]*model.Attendance
	nextID    uint
	recent    []model.Attendance
	createErr error
	getCalls  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[uint]*model.Attendance)}
}

func (f *fakeAttendanceRepo) GetForDate(ctx context.Context, scope tenant.Scope, userID uuid.UUID, date string) (*model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	for _, a := range f.rows {
		if a.OrgID == scope.OrgID && a.ClientID == scope.ClientID && a.UserID == userID && a.Date == date {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListRange(ctx context.Context, scope tenant.Scope, userID uuid.UUID, from, to string) ([]model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	var out []model.Attendance
	for _, a := range f.rows {
		if a.OrgID != scope.OrgID || a.ClientID != scope.ClientID || a.UserID != userID {
			continue
		}
		if strings.Compare(a.Date, from) >= 0 && strings.Compare(a.Date, to) <= 0 {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CountForDate(ctx context.Context, scope tenant.Scope, date string) (int64, error) {
	if err := tenant.Require(scope); err != nil {
		return 0, err
	}
	var n int64
	for _, a := range f.rows {
		if a.OrgID == scope.OrgID && a.ClientID == scope.ClientID && a.Date == date && a.CheckInTime != nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttendanceRepo) RecentActivity(ctx context.Context, scope tenant.Scope, limit int) ([]model.Attendance, error) {
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	return f.recent, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att *model.Attendance) error {
	if f.createErr != nil {
		return f.createErr
	}
	if err := tenant.Require(tenant.Scope{OrgID: att.OrgID, ClientID: att.ClientID}); err != nil {
		return err
	}
	f.nextID++
	att.AttendanceID = f.nextID
	cp := *att
	f.rows[att.AttendanceID] = &cp
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, scope tenant.Scope, id uint) (*model.Attendance, error) {
	f.getCalls++
	if err := tenant.Require(scope); err != nil {
		return nil, err
	}
	a, ok := f.rows[id]
	if !ok || a.OrgID != scope.OrgID || a.ClientID != scope.ClientID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, scope tenant.Scope, id uint, updates map[string]interface{}) (*model.Attendance, error) {
	a, err := f.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	for col, val := range updates {
		switch col {
		case "checkintime":
			t := val.(time.Time)
			a.CheckInTime = &t
		case "checkouttime":
			t := val.(time.Time)
			a.CheckOutTime = &t
		case "status":
			a.Status = val.(string)
		case "remarks":
			a.Remarks = val.(string)
		}
	}
	f.rows[id] = a
	cp := *a
	return &cp, nil
}

type fakeNotifier struct {
	events []PresenceEvent
}

func (f *fakeNotifier) BroadcastPresence(event PresenceEvent) {
	f.events = append(f.events, event)
}

type fakeAuthAdmin struct {
	created   []model.LoginIdentity
	deleted   []uuid.UUID
	roleMeta  map[uuid.UUID]string
	createErr error
	deleteErr error
	metaErr   error
}

func newFakeAuthAdmin() *fakeAuthAdmin {
	return &fakeAuthAdmin{roleMeta: make(map[uuid.UUID]string)}
}

func (f *fakeAuthAdmin) CreateIdentity(ctx context.Context, email, password string) (*model.LoginIdentity, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	ident := model.LoginIdentity{ID: uuid.New(), Email: email, EmailConfirmed: true}
	f.created = append(f.created, ident)
	return &ident, nil
}

func (f *fakeAuthAdmin) UpdateRoleMetadata(ctx context.Context, id uuid.UUID, role string) error {
	if f.metaErr != nil {
		return f.metaErr
	}
	f.roleMeta[id] = role
	return nil
}

func (f *fakeAuthAdmin) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func testCaller(role string, org, client int) *model.User {
	return &model.User{
		UserID:   uuid.New(),
		OrgID:    org,
		ClientID: client,
		FullName: strings.ToUpper(role[:1]) + role[1:] + " Caller",
		Email:    role + "@corp.test",
		Role:     role,
		Status:   "Active",
		IsActive: true,
	}
}
