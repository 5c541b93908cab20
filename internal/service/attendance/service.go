package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

// EmployeeFinder resolves spreadsheet employee codes.
type EmployeeFinder interface {
	GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employees  EmployeeFinder
	reconciler attendance.Reconciler
	storage    storage.FileStorage
	loc        *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employees EmployeeFinder,
	reconciler attendance.Reconciler,
	fileStorage storage.FileStorage,
	loc *time.Location,
) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		employees:            employees,
		reconciler:           reconciler,
		storage:              fileStorage,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (s *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := s.now()
	return now.UTC(), utils.DateOf(now, s.loc)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	req.EmployeeID = employeeID
	now, date := s.today()

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID: req.EmployeeID,
			Date:       date,
			CheckIn:    &now,
			Status:     attendance.StatusPresent,
		})
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		slog.Info("Employee checked in", "employee_id", req.EmployeeID, "date", utils.FormatDate(date))
		return s.GetAttendance(ctx, created.ID)
	case err != nil:
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	case existing.CheckIn != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	// A row can exist without a check-in when the day was imported or analyzed first.
	existing.CheckIn = &now
	if existing.Status == "" || (!existing.ManualStatus && existing.Status == attendance.StatusAbsent) {
		existing.Status = attendance.StatusPresent
	}
	if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	slog.Info("Employee checked in", "employee_id", req.EmployeeID, "date", utils.FormatDate(date))
	return s.GetAttendance(ctx, existing.ID)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	req.EmployeeID = employeeID
	now, date := s.today()

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	existing.CheckOut = &now
	hours := utils.HoursBetween(*existing.CheckIn, now)
	existing.TotalHours = &hours
	if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee checked out", "employee_id", req.EmployeeID, "date", utils.FormatDate(date), "total_hours", hours)
	return s.GetAttendance(ctx, existing.ID)
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return s.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  utils.TotalPages(total, filter.Limit),
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService. Employees only see
// their own records.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	employeeID, isAdmin, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !isAdmin && att.EmployeeID != employeeID {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	return mapAttendanceToResponse(att), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckIn)
		t = t.UTC()
		att.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckOut)
		t = t.UTC()
		att.CheckOut = &t
	}
	if att.CheckIn != nil && att.CheckOut != nil {
		if att.CheckOut.Before(*att.CheckIn) {
			return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
		}
		hours := utils.HoursBetween(*att.CheckIn, *att.CheckOut)
		att.TotalHours = &hours
	}

	switch {
	case req.Status != nil:
		att.Status = attendance.AttendanceStatus(*req.Status)
		att.ManualStatus = true
	case req.ClearOverride:
		att.ManualStatus = false
	}

	if err := s.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// Past days are re-analyzed right away; today is left to the nightly run.
	if _, today := s.today(); att.Date.Before(today) && (req.ClearOverride || req.CheckIn != nil || req.CheckOut != nil) {
		if _, err := s.reconciler.ReconcileDay(ctx, att.EmployeeID, att.Date); err != nil {
			slog.Error("Failed to reconcile updated attendance", "attendance_id", att.ID, "error", err)
		}
	}

	updated, err := s.AttendanceRepository.GetByID(ctx, att.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapAttendanceToResponse(updated), nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var exceptionType *string
	if att.ExceptionType != "" {
		v := string(att.ExceptionType)
		exceptionType = &v
	}
	notes := att.Notes
	if notes == nil {
		notes = []string{}
	}

	return attendance.AttendanceResponse{
		ID:            att.ID,
		EmployeeID:    att.EmployeeID,
		EmployeeName:  att.EmployeeName,
		EmployeeCode:  att.EmployeeCode,
		Date:          utils.FormatDate(att.Date),
		CheckIn:       utils.FormatTimePtr(att.CheckIn),
		CheckOut:      utils.FormatTimePtr(att.CheckOut),
		TotalHours:    att.TotalHours,
		Status:        string(att.Status),
		ManualStatus:  att.ManualStatus,
		HasException:  att.HasException,
		ExceptionType: exceptionType,
		WorkMinutes:   att.WorkMinutes,
		Notes:         notes,
		StatusColor:   StatusColor(att.Status, att.HasException),
		StatusMessage: StatusMessage(analysisOf(att)),
		AnalyzedAt:    utils.FormatTimePtr(att.AnalyzedAt),
		CreatedAt:     att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     att.UpdatedAt.Format(time.RFC3339),
	}
}
