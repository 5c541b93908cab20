package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

type AdminLister interface {
	ListAdmins(ctx context.Context) ([]employee.Employee, error)
}

type Notifier interface {
	QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error
}

// DayReconciler re-analyzes a day once its leave decision changed.
type DayReconciler interface {
	ReconcileDay(ctx context.Context, employeeID string, date time.Time) (attendance.ReconcileResult, error)
}

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	admins     AdminLister
	notifier   Notifier
	reconciler DayReconciler
	loc        *time.Location
	now        func() time.Time
}

func NewLeaveService(
	leaveRequestRepository leave.LeaveRequestRepository,
	admins AdminLister,
	notifier Notifier,
	reconciler DayReconciler,
	loc *time.Location,
) *LeaveServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		admins:                 admins,
		notifier:               notifier,
		reconciler:             reconciler,
		loc:                    loc,
		now:                    time.Now,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	req.EmployeeID = employeeID
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	date, _ := utils.ParseDate(req.Date)
	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Type:       leave.LeaveType(req.Type),
		Status:     leave.LeaveStatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, created.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to reload leave request: %w", err)
	}
	l.notifyAdmins(ctx, request)

	slog.Info("Leave request created", "leave_request_id", request.ID, "employee_id", request.EmployeeID, "date", req.Date, "type", req.Type)
	return mapLeaveRequestToResponse(request), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, req, leave.LeaveStatusApproved)
}

// DenyLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DenyLeaveRequest(ctx context.Context, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, req, leave.LeaveStatusDenied)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, req leave.DecideLeaveRequestRequest, status leave.LeaveStatus) (leave.LeaveRequestResponse, error) {
	adminID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.LeaveStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	decidedAt := l.now().UTC()
	request.Status = status
	request.DecidedBy = &adminID
	request.DecidedAt = &decidedAt
	request.DecisionNote = req.Note
	if err := l.LeaveRequestRepository.UpdateDecision(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request decided", "leave_request_id", request.ID, "status", status, "decided_by", adminID)
	l.notifyEmployee(ctx, request)

	// Past and current days already have signals worth re-reading.
	if !request.Date.After(utils.DateOf(l.now(), l.loc)) {
		if _, err := l.reconciler.ReconcileDay(ctx, request.EmployeeID, request.Date); err != nil {
			slog.Error("Failed to reconcile decided leave day", "leave_request_id", request.ID, "error", err)
			l.notifyReconcileFailure(ctx, request, err)
		}
	}

	updated, err := l.LeaveRequestRepository.GetByID(ctx, request.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return mapLeaveRequestToResponse(updated), nil
}

// CancelLeaveRequest implements leave.LeaveService. Only the owner can
// cancel, and only while the request is pending.
func (l *LeaveServiceImpl) CancelLeaveRequest(ctx context.Context, requestID string) error {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return leave.ErrNotRequestOwner
	}
	if request.Status != leave.LeaveStatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	if err := l.LeaveRequestRepository.Delete(ctx, requestID); err != nil {
		return err
	}
	slog.Info("Leave request cancelled", "leave_request_id", requestID, "employee_id", employeeID)
	return nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	employeeID, isAdmin, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !isAdmin && request.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}
	return mapLeaveRequestToResponse(request), nil
}

// ListLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequest(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapLeaveRequestToResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    utils.TotalPages(total, filter.Limit),
		LeaveRequests: responses,
	}, nil
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return l.ListLeaveRequest(ctx, filter)
}

func (l *LeaveServiceImpl) notifyAdmins(ctx context.Context, request leave.LeaveRequest) {
	admins, err := l.admins.ListAdmins(ctx)
	if err != nil {
		slog.Error("Failed to list admins for leave notification", "leave_request_id", request.ID, "error", err)
		return
	}

	who := request.EmployeeID
	if request.EmployeeName != nil {
		who = *request.EmployeeName
	}
	reqs := make([]notification.CreateNotificationRequest, 0, len(admins))
	for _, admin := range admins {
		sender := request.EmployeeID
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			SenderID:    &sender,
			Type:        notification.TypeLeaveRequested,
			Title:       "New leave request",
			Message:     fmt.Sprintf("%s requested %s on %s", who, request.Type, utils.FormatDate(request.Date)),
			Data:        leaveData(request),
		})
	}
	if len(reqs) == 0 {
		return
	}
	if err := l.notifier.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("Failed to queue leave notification", "leave_request_id", request.ID, "error", err)
	}
}

// notifyReconcileFailure asks admins to reconcile the day by hand; the
// nightly job only revisits yesterday.
func (l *LeaveServiceImpl) notifyReconcileFailure(ctx context.Context, request leave.LeaveRequest, cause error) {
	admins, err := l.admins.ListAdmins(ctx)
	if err != nil {
		slog.Error("Failed to list admins for attendance review", "leave_request_id", request.ID, "error", err)
		return
	}

	date := utils.FormatDate(request.Date)
	reqs := make([]notification.CreateNotificationRequest, 0, len(admins))
	for _, admin := range admins {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			Type:        notification.TypeAttendanceReview,
			Title:       "Attendance needs review",
			Message: fmt.Sprintf("Employee %s on %s was not reconciled after the leave decision: %v",
				request.EmployeeID, date, cause),
			Data: map[string]interface{}{
				"date":             date,
				"employee_id":      request.EmployeeID,
				"leave_request_id": request.ID,
			},
		})
	}
	if len(reqs) == 0 {
		return
	}
	if err := l.notifier.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("Failed to queue attendance review notification", "leave_request_id", request.ID, "error", err)
	}
}

func (l *LeaveServiceImpl) notifyEmployee(ctx context.Context, request leave.LeaveRequest) {
	notifType, title := notification.TypeLeaveApproved, "Leave request approved"
	if request.Status == leave.LeaveStatusDenied {
		notifType, title = notification.TypeLeaveDenied, "Leave request denied"
	}

	message := fmt.Sprintf("Your %s request for %s was %s", request.Type, utils.FormatDate(request.Date), statusWord(request.Status))
	if request.DecisionNote != nil && *request.DecisionNote != "" {
		message += ": " + *request.DecisionNote
	}

	err := l.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: request.EmployeeID,
		SenderID:    request.DecidedBy,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data:        leaveData(request),
	})
	if err != nil {
		slog.Error("Failed to queue leave decision notification", "leave_request_id", request.ID, "error", err)
	}
}

func statusWord(s leave.LeaveStatus) string {
	if s == leave.LeaveStatusDenied {
		return "denied"
	}
	return "approved"
}

func leaveData(request leave.LeaveRequest) map[string]interface{} {
	return map[string]interface{}{
		"leave_request_id": request.ID,
		"date":             utils.FormatDate(request.Date),
		"type":             string(request.Type),
		"status":           string(request.Status),
	}
}

func mapLeaveRequestToResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		EmployeeCode: r.EmployeeCode,
		Date:         utils.FormatDate(r.Date),
		Type:         string(r.Type),
		Status:       string(r.Status),
		Reason:       r.Reason,
		DecidedBy:    r.DecidedBy,
		DecidedAt:    utils.FormatTimePtr(r.DecidedAt),
		DecisionNote: r.DecisionNote,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
