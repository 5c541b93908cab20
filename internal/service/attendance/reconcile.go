package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// LeaveLookup finds the leave request filed for an employee-day.
type LeaveLookup interface {
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (leave.LeaveRequest, error)
}

// EmployeeLister lists the employees a reconciliation run covers.
type EmployeeLister interface {
	ListActive(ctx context.Context) ([]employee.Employee, error)
	ListAdmins(ctx context.Context) ([]employee.Employee, error)
}

// Issuer records a warning or penalty produced by an analysis. It reports
// false when one already existed for the day.
type Issuer interface {
	CreateFromAttendance(ctx context.Context, employeeID string, date time.Time, reason string) (bool, error)
}

type Notifier interface {
	QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error
}

type ReconcilerImpl struct {
	db          database.Transactor
	attendances attendance.AttendanceRepository
	leaves      LeaveLookup
	evidence    worklog.EvidenceService
	employees   EmployeeLister
	warnings    Issuer
	penalties   Issuer
	notifier    Notifier
	concurrency int
}

func NewReconciler(
	db database.Transactor,
	attendances attendance.AttendanceRepository,
	leaves LeaveLookup,
	evidence worklog.EvidenceService,
	employees EmployeeLister,
	warnings Issuer,
	penalties Issuer,
	notifier Notifier,
	concurrency int,
) *ReconcilerImpl {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ReconcilerImpl{
		db:          db,
		attendances: attendances,
		leaves:      leaves,
		evidence:    evidence,
		employees:   employees,
		warnings:    warnings,
		penalties:   penalties,
		notifier:    notifier,
		concurrency: concurrency,
	}
}

// daySignals is everything stored about an employee-day before analysis.
type daySignals struct {
	leave    *leave.LeaveRequest
	record   *attendance.Attendance
	evidence attendance.WorkEvidence
}

func (r *ReconcilerImpl) loadSignals(ctx context.Context, employeeID string, date time.Time) (daySignals, error) {
	var s daySignals

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		req, err := r.leaves.GetByEmployeeAndDate(gctx, employeeID, date)
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load leave request: %w", err)
		}
		s.leave = &req
		return nil
	})
	g.Go(func() error {
		rec, err := r.attendances.GetByEmployeeAndDate(gctx, employeeID, date)
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load attendance: %w", err)
		}
		s.record = &rec
		return nil
	})
	g.Go(func() error {
		ev, err := r.evidence.GetWorkEvidence(gctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("load work evidence: %w", err)
		}
		s.evidence = ev
		return nil
	})

	return s, g.Wait()
}

func (s daySignals) input() attendance.DayInput {
	in := attendance.DayInput{Evidence: s.evidence}
	if s.leave != nil {
		in.Leave = &attendance.LeaveSignal{Type: s.leave.Type, Status: s.leave.Status}
	}
	if s.record != nil {
		in.Presence = s.record.Presence()
	}
	return in
}

// ReconcileDay implements attendance.Reconciler.
func (r *ReconcilerImpl) ReconcileDay(ctx context.Context, employeeID string, date time.Time) (attendance.ReconcileResult, error) {
	date = utils.DateOf(date, time.UTC)

	signals, err := r.loadSignals(ctx, employeeID, date)
	if err != nil {
		return attendance.ReconcileResult{}, err
	}

	analysis := Analyze(signals.input())
	result := attendance.ReconcileResult{
		EmployeeID: employeeID,
		Date:       utils.FormatDate(date),
		Analysis:   analysis,
	}

	record := attendance.Attendance{
		EmployeeID:    employeeID,
		Date:          date,
		HasException:  analysis.HasException,
		ExceptionType: analysis.ExceptionType,
		WorkMinutes:   analysis.WorkMinutes,
		Notes:         analysis.Notes,
	}
	manual := signals.record != nil && signals.record.ManualStatus
	if !analysis.Unmodeled && !manual {
		record.Status = analysis.FinalStatus
		result.StatusPersisted = true
	}

	reason := issueReason(analysis)
	err = r.db.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.attendances.SaveAnalysis(ctx, record); err != nil {
			return err
		}
		if analysis.ShouldIssueWarning {
			created, err := r.warnings.CreateFromAttendance(ctx, employeeID, date, reason)
			if err != nil {
				return fmt.Errorf("issue warning: %w", err)
			}
			result.WarningIssued = created
		}
		if analysis.ShouldIssuePenalty {
			created, err := r.penalties.CreateFromAttendance(ctx, employeeID, date, reason)
			if err != nil {
				return fmt.Errorf("issue penalty: %w", err)
			}
			result.PenaltyIssued = created
		}
		return nil
	})
	if err != nil {
		return attendance.ReconcileResult{}, fmt.Errorf("reconcile %s on %s: %w", employeeID, result.Date, err)
	}

	r.notify(ctx, signals.record, result)
	return result, nil
}

// issueReason is the text stored on warnings and penalties.
func issueReason(a attendance.Analysis) string {
	if len(a.Notes) > 0 {
		return strings.Join(a.Notes, "; ")
	}
	return ExceptionMessage(a.ExceptionType)
}

// notify queues notifications for what changed. Failures are logged; the
// analysis is already committed.
func (r *ReconcilerImpl) notify(ctx context.Context, previous *attendance.Attendance, result attendance.ReconcileResult) {
	a := result.Analysis
	data := map[string]interface{}{
		"date":           result.Date,
		"status":         a.FinalStatus,
		"exception_type": a.ExceptionType,
	}

	var reqs []notification.CreateNotificationRequest
	newException := a.HasException &&
		(previous == nil || !previous.HasException || previous.ExceptionType != a.ExceptionType)
	if newException {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: result.EmployeeID,
			Type:        notification.TypeAttendanceException,
			Title:       "Attendance exception",
			Message:     fmt.Sprintf("%s: %s", result.Date, StatusMessage(a)),
			Data:        data,
		})
	}
	if result.WarningIssued {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: result.EmployeeID,
			Type:        notification.TypeAttendanceWarning,
			Title:       "Attendance warning issued",
			Message:     fmt.Sprintf("You received a warning for %s: %s", result.Date, issueReason(a)),
			Data:        data,
		})
	}
	if result.PenaltyIssued {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: result.EmployeeID,
			Type:        notification.TypeAttendancePenalty,
			Title:       "Attendance penalty issued",
			Message:     fmt.Sprintf("You received a penalty for %s: %s", result.Date, issueReason(a)),
			Data:        data,
		})
	}

	if a.Unmodeled {
		admins, err := r.employees.ListAdmins(ctx)
		if err != nil {
			slog.Error("Failed to list admins for attendance review", "error", err)
		}
		for _, admin := range admins {
			reqs = append(reqs, notification.CreateNotificationRequest{
				RecipientID: admin.ID,
				Type:        notification.TypeAttendanceReview,
				Title:       "Attendance needs review",
				Message:     fmt.Sprintf("Employee %s on %s: %s", result.EmployeeID, result.Date, strings.Join(a.Notes, "; ")),
				Data: map[string]interface{}{
					"date":        result.Date,
					"employee_id": result.EmployeeID,
				},
			})
		}
	}

	if len(reqs) == 0 {
		return
	}
	if err := r.notifier.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Warn("Failed to queue attendance notifications",
			"employee_id", result.EmployeeID,
			"date", result.Date,
			"error", err,
		)
	}
}

// ReconcileDate implements attendance.Reconciler. Every active employee is
// reconciled independently; a failing employee is reported in the summary.
func (r *ReconcilerImpl) ReconcileDate(ctx context.Context, date time.Time) (attendance.ReconcileSummary, error) {
	date = utils.DateOf(date, time.UTC)
	summary := attendance.ReconcileSummary{
		Date:     utils.FormatDate(date),
		Failures: []attendance.ReconcileFailure{},
	}

	employees, err := r.employees.ListActive(ctx)
	if err != nil {
		return summary, fmt.Errorf("list active employees: %w", err)
	}
	summary.Total = len(employees)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, emp := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := r.ReconcileDay(gctx, emp.ID, date)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("Failed to reconcile attendance", "employee_id", emp.ID, "date", summary.Date, "error", err)
				summary.Failures = append(summary.Failures, attendance.ReconcileFailure{
					EmployeeID: emp.ID,
					Error:      err.Error(),
				})
				return nil
			}

			summary.Reconciled++
			if result.Analysis.HasException {
				summary.Exceptions++
			}
			if result.WarningIssued {
				summary.Warnings++
			}
			if result.PenaltyIssued {
				summary.Penalties++
			}
			if result.Analysis.Unmodeled {
				summary.Unmodeled++
			}
			return nil
		})
	}

	// Only cancellation of ctx surfaces here.
	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}
