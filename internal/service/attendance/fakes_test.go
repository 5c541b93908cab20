package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
)

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	rows    map[string]attendance.Attendance // by id
	nextID  int
	saveErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]attendance.Attendance)}
}

func (r *fakeAttendanceRepo) put(a attendance.Attendance) attendance.Attendance {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		r.nextID++
		a.ID = fmt.Sprintf("att-%d", r.nextID)
	}
	r.rows[a.ID] = a
	return a
}

func (r *fakeAttendanceRepo) byDay(employeeID string, date time.Time) (attendance.Attendance, bool) {
	for _, a := range r.rows {
		if dayKey(a.EmployeeID, a.Date) == dayKey(employeeID, date) {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	_, exists := r.byDay(a.EmployeeID, a.Date)
	r.mu.Unlock()
	if exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	return r.put(a), nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byDay(employeeID, date)
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.rows[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) SaveAnalysis(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if r.saveErr != nil {
		return attendance.Attendance{}, r.saveErr
	}
	r.mu.Lock()
	existing, ok := r.byDay(a.EmployeeID, a.Date)
	r.mu.Unlock()
	if !ok {
		return r.put(a), nil
	}
	if a.Status != "" && !existing.ManualStatus {
		existing.Status = a.Status
	}
	existing.HasException = a.HasException
	existing.ExceptionType = a.ExceptionType
	existing.WorkMinutes = a.WorkMinutes
	existing.Notes = a.Notes
	return r.put(existing), nil
}

func (r *fakeAttendanceRepo) UpsertImported(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	existing, ok := r.byDay(a.EmployeeID, a.Date)
	r.mu.Unlock()
	if !ok {
		return r.put(a), nil
	}
	existing.CheckIn, existing.CheckOut, existing.TotalHours = a.CheckIn, a.CheckOut, a.TotalHours
	if a.Status != "" {
		existing.Status = a.Status
	}
	existing.ManualStatus = existing.ManualStatus || a.ManualStatus
	return r.put(existing), nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.rows {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.rows {
		if !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

type fakeLeaves map[string]leave.LeaveRequest

func (f fakeLeaves) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (leave.LeaveRequest, error) {
	req, ok := f[dayKey(employeeID, date)]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

type fakeEvidence map[string]attendance.WorkEvidence

func (f fakeEvidence) GetWorkEvidence(ctx context.Context, employeeID string, date time.Time) (attendance.WorkEvidence, error) {
	if employeeID == "broken" {
		return attendance.WorkEvidence{}, errors.New("evidence store unavailable")
	}
	return f[dayKey(employeeID, date)], nil
}

type fakeEmployees struct {
	active []employee.Employee
	admins []employee.Employee
}

func (f fakeEmployees) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

func (f fakeEmployees) ListAdmins(ctx context.Context) ([]employee.Employee, error) {
	return f.admins, nil
}

func (f fakeEmployees) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range f.active {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// fakeIssuer mimics the unique (employee, date) constraint of warnings and penalties.
type fakeIssuer struct {
	mu      sync.Mutex
	issued  map[string]string
	reasons []string
}

func newFakeIssuer() *fakeIssuer {
	return &fakeIssuer{issued: make(map[string]string)}
}

func (f *fakeIssuer) CreateFromAttendance(ctx context.Context, employeeID string, date time.Time, reason string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := dayKey(employeeID, date)
	if _, ok := f.issued[key]; ok {
		return false, nil
	}
	f.issued[key] = reason
	f.reasons = append(f.reasons, reason)
	return true, nil
}

func (f *fakeIssuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.issued)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	return f.QueueBulkNotification(ctx, []notification.CreateNotificationRequest{req})
}

func (f *fakeNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, reqs...)
	return nil
}

func (f *fakeNotifier) ofType(t notification.NotificationType) []notification.CreateNotificationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notification.CreateNotificationRequest
	for _, n := range f.sent {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// fakeTx runs fn directly; rollbacks are not simulated.
type fakeTx struct{ calls atomic.Int32 }

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls.Add(1)
	return fn(ctx)
}

type fakeReconciler struct {
	days []string
}

func (f *fakeReconciler) ReconcileDay(ctx context.Context, employeeID string, date time.Time) (attendance.ReconcileResult, error) {
	f.days = append(f.days, dayKey(employeeID, date))
	return attendance.ReconcileResult{EmployeeID: employeeID}, nil
}

func (f *fakeReconciler) ReconcileDate(ctx context.Context, date time.Time) (attendance.ReconcileSummary, error) {
	return attendance.ReconcileSummary{}, nil
}
