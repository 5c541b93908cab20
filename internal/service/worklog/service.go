package worklog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/tag"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

// AssignmentLister resolves which tags an employee may log.
type AssignmentLister interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]tag.Assignment, error)
}

type AdminLister interface {
	ListAdmins(ctx context.Context) ([]employee.Employee, error)
}

type Notifier interface {
	QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error
}

type WorkLogServiceImpl struct {
	db          database.Transactor
	entries     worklog.EntryRepository
	assignments AssignmentLister
	admins      AdminLister
	notifier    Notifier
	loc         *time.Location
	now         func() time.Time
}

func NewWorkLogService(
	db database.Transactor,
	entries worklog.EntryRepository,
	assignments AssignmentLister,
	admins AdminLister,
	notifier Notifier,
	loc *time.Location,
) *WorkLogServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &WorkLogServiceImpl{
		db:          db,
		entries:     entries,
		assignments: assignments,
		admins:      admins,
		notifier:    notifier,
		loc:         loc,
		now:         time.Now,
	}
}

// SaveEntries implements worklog.WorkLogService.
func (s *WorkLogServiceImpl) SaveEntries(ctx context.Context, req worklog.SaveEntriesRequest) (worklog.DayLogResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return worklog.DayLogResponse{}, err
	}
	req.EmployeeID = employeeID
	if err := req.Validate(); err != nil {
		return worklog.DayLogResponse{}, err
	}

	date, _ := utils.ParseDate(req.Date)
	if date.After(utils.DateOf(s.now(), s.loc)) {
		return worklog.DayLogResponse{}, worklog.ErrFutureDate
	}

	assigned, err := s.assignments.ListByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return worklog.DayLogResponse{}, fmt.Errorf("failed to list assigned tags: %w", err)
	}
	tags := make(map[string]tag.Assignment, len(assigned))
	for _, a := range assigned {
		tags[a.TagID] = a
	}

	entries := make([]worklog.Entry, 0, len(req.Entries))
	for _, in := range req.Entries {
		a, ok := tags[in.TagID]
		if !ok {
			return worklog.DayLogResponse{}, fmt.Errorf("%w: %s", worklog.ErrTagNotAssigned, in.TagID)
		}
		if !a.IsActive {
			return worklog.DayLogResponse{}, fmt.Errorf("%w: %s", tag.ErrTagInactive, a.TagName)
		}
		entries = append(entries, worklog.Entry{
			EmployeeID: req.EmployeeID,
			TagID:      in.TagID,
			Date:       date,
			Count:      in.Count,
			Minutes:    in.Count * a.TimeMinutes,
		})
	}

	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.entries.IsDayLocked(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if locked {
			return worklog.ErrDayLocked
		}
		for _, e := range entries {
			if _, err := s.entries.Upsert(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return worklog.DayLogResponse{}, err
	}

	slog.Info("Work log saved", "employee_id", req.EmployeeID, "date", req.Date, "entries", len(entries))
	return s.day(ctx, req.EmployeeID, date)
}

// SubmitDay implements worklog.WorkLogService. Employees submit their own day.
func (s *WorkLogServiceImpl) SubmitDay(ctx context.Context, req worklog.DayRequest) (worklog.DayLogResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return worklog.DayLogResponse{}, err
	}
	req.EmployeeID = employeeID
	if err := req.Validate(); err != nil {
		return worklog.DayLogResponse{}, err
	}
	date, _ := utils.ParseDate(req.Date)

	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.entries.IsDayLocked(ctx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if locked {
			return worklog.ErrDayLocked
		}
		n, err := s.entries.SetSubmitted(ctx, req.EmployeeID, date, true)
		if err != nil {
			return err
		}
		if n == 0 {
			return worklog.ErrNothingToSubmit
		}
		return nil
	})
	if err != nil {
		return worklog.DayLogResponse{}, err
	}

	resp, err := s.day(ctx, req.EmployeeID, date)
	if err != nil {
		return worklog.DayLogResponse{}, err
	}
	s.notifyAdmins(ctx, resp)
	slog.Info("Work log submitted", "employee_id", req.EmployeeID, "date", req.Date, "total_minutes", resp.TotalMinutes)
	return resp, nil
}

// UnlockDay implements worklog.WorkLogService.
func (s *WorkLogServiceImpl) UnlockDay(ctx context.Context, req worklog.DayRequest) (worklog.DayLogResponse, error) {
	if err := req.Validate(); err != nil {
		return worklog.DayLogResponse{}, err
	}
	date, _ := utils.ParseDate(req.Date)

	locked, err := s.entries.IsDayLocked(ctx, req.EmployeeID, date)
	if err != nil {
		return worklog.DayLogResponse{}, err
	}
	if !locked {
		return worklog.DayLogResponse{}, worklog.ErrDayNotSubmitted
	}
	if _, err := s.entries.SetSubmitted(ctx, req.EmployeeID, date, false); err != nil {
		return worklog.DayLogResponse{}, err
	}

	slog.Info("Work log unlocked", "employee_id", req.EmployeeID, "date", req.Date)
	return s.day(ctx, req.EmployeeID, date)
}

// GetDay implements worklog.WorkLogService. Non-admins always get their own day.
func (s *WorkLogServiceImpl) GetDay(ctx context.Context, req worklog.DayRequest) (worklog.DayLogResponse, error) {
	employeeID, isAdmin, err := jwt.FromContext(ctx)
	if err != nil {
		return worklog.DayLogResponse{}, err
	}
	if !isAdmin || req.EmployeeID == "" {
		req.EmployeeID = employeeID
	}
	if err := req.Validate(); err != nil {
		return worklog.DayLogResponse{}, err
	}
	date, _ := utils.ParseDate(req.Date)
	return s.day(ctx, req.EmployeeID, date)
}

func (s *WorkLogServiceImpl) day(ctx context.Context, employeeID string, date time.Time) (worklog.DayLogResponse, error) {
	entries, err := s.entries.ListDay(ctx, employeeID, date)
	if err != nil {
		return worklog.DayLogResponse{}, err
	}

	resp := worklog.DayLogResponse{
		EmployeeID: employeeID,
		Date:       utils.FormatDate(date),
		Entries:    make([]worklog.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.TotalMinutes += e.Minutes
		if e.Submitted {
			resp.Submitted = true
			resp.SubmittedAt = utils.FormatTimePtr(e.SubmittedAt)
		}
		resp.Entries = append(resp.Entries, worklog.EntryResponse{
			ID:      e.ID,
			TagID:   e.TagID,
			TagName: e.TagName,
			Count:   e.Count,
			Minutes: e.Minutes,
		})
	}
	return resp, nil
}

func (s *WorkLogServiceImpl) notifyAdmins(ctx context.Context, day worklog.DayLogResponse) {
	admins, err := s.admins.ListAdmins(ctx)
	if err != nil {
		slog.Error("Failed to list admins for work log notification", "employee_id", day.EmployeeID, "error", err)
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(admins))
	for _, admin := range admins {
		sender := day.EmployeeID
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			SenderID:    &sender,
			Type:        notification.TypeWorklogSubmitted,
			Title:       "Work log submitted",
			Message:     fmt.Sprintf("A work log for %s was submitted (%d minutes)", day.Date, day.TotalMinutes),
			Data: map[string]interface{}{
				"employee_id":   day.EmployeeID,
				"date":          day.Date,
				"total_minutes": day.TotalMinutes,
			},
		})
	}
	if len(reqs) == 0 {
		return
	}
	if err := s.notifier.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("Failed to queue work log notification", "employee_id", day.EmployeeID, "error", err)
	}
}
