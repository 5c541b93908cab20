package worklog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/tag"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/flowace"
)

func key(parts ...string) string {
	return fmt.Sprint(parts)
}

type fakeEntries struct {
	mu      sync.Mutex
	entries map[string]worklog.Entry // by employee, tag, date
	sumErr  error
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{entries: make(map[string]worklog.Entry)}
}

func (f *fakeEntries) ListDay(ctx context.Context, employeeID string, date time.Time) ([]worklog.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []worklog.Entry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) {
			name := "tag " + e.TagID
			e.TagName = &name
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TagID < out[j].TagID })
	return out, nil
}

func (f *fakeEntries) Upsert(ctx context.Context, e worklog.Entry) (worklog.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(e.EmployeeID, e.TagID, e.Date.Format("2006-01-02"))
	if existing, ok := f.entries[k]; ok {
		existing.Count, existing.Minutes = e.Count, e.Minutes
		f.entries[k] = existing
		return existing, nil
	}
	e.ID = fmt.Sprintf("entry-%d", len(f.entries)+1)
	f.entries[k] = e
	return e, nil
}

func (f *fakeEntries) IsDayLocked(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) && e.Submitted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEntries) SetSubmitted(ctx context.Context, employeeID string, date time.Time, submitted bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) {
			e.Submitted = submitted
			e.SubmittedAt = nil
			if submitted {
				at := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
				e.SubmittedAt = &at
			}
			f.entries[k] = e
			n++
		}
	}
	return n, nil
}

func (f *fakeEntries) SumMinutes(ctx context.Context, employeeID string, date time.Time) (int, error) {
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) {
			total += e.Minutes
		}
	}
	return total, nil
}

type fakeActivities struct {
	mu      sync.Mutex
	records map[string]worklog.ActivityRecord
}

func newFakeActivities() *fakeActivities {
	return &fakeActivities{records: make(map[string]worklog.ActivityRecord)}
}

func (f *fakeActivities) Upsert(ctx context.Context, r worklog.ActivityRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[key(r.EmployeeID, r.Date.Format("2006-01-02"), r.Source)] = r
	return nil
}

func (f *fakeActivities) GetMinutes(ctx context.Context, employeeID string, date time.Time, source string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[key(employeeID, date.Format("2006-01-02"), source)].ActiveMinutes, nil
}

type fakeAssignments map[string][]tag.Assignment

func (f fakeAssignments) ListByEmployee(ctx context.Context, employeeID string) ([]tag.Assignment, error) {
	return f[employeeID], nil
}

type fakeEmployees struct {
	admins  []employee.Employee
	flowace map[string]employee.Employee
}

func (f fakeEmployees) ListAdmins(ctx context.Context) ([]employee.Employee, error) {
	return f.admins, nil
}

func (f fakeEmployees) GetByFlowaceUserID(ctx context.Context, id string) (employee.Employee, error) {
	if id == "fl-error" {
		return employee.Employee{}, errors.New("connection reset")
	}
	e, ok := f.flowace[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeNotifier struct {
	sent []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	f.sent = append(f.sent, reqs...)
	return nil
}

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeFlowace struct {
	activities []flowace.Activity
	err        error
	dates      []time.Time
}

func (f *fakeFlowace) DailyActivity(ctx context.Context, date time.Time) ([]flowace.Activity, error) {
	f.dates = append(f.dates, date)
	return f.activities, f.err
}
