package warning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/warning"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

type Notifier interface {
	QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error
}

type WarningServiceImpl struct {
	warning.WarningRepository
	notifier Notifier
}

func NewWarningService(warningRepository warning.WarningRepository, notifier Notifier) *WarningServiceImpl {
	return &WarningServiceImpl{
		WarningRepository: warningRepository,
		notifier:          notifier,
	}
}

// CreateWarning implements warning.WarningService.
func (s *WarningServiceImpl) CreateWarning(ctx context.Context, req warning.CreateWarningRequest) (warning.WarningResponse, error) {
	adminID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return warning.WarningResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return warning.WarningResponse{}, err
	}

	date, _ := utils.ParseDate(req.Date)
	created, err := s.WarningRepository.Create(ctx, warning.Warning{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Reason:     req.Reason,
		Source:     warning.SourceManual,
		IssuedBy:   &adminID,
	})
	if err != nil {
		return warning.WarningResponse{}, err
	}

	err = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: created.EmployeeID,
		SenderID:    &adminID,
		Type:        notification.TypeAttendanceWarning,
		Title:       "Warning issued",
		Message:     fmt.Sprintf("You received a warning for %s: %s", req.Date, req.Reason),
		Data:        map[string]interface{}{"warning_id": created.ID, "date": req.Date},
	})
	if err != nil {
		slog.Error("Failed to queue warning notification", "warning_id", created.ID, "error", err)
	}

	slog.Info("Warning issued", "warning_id", created.ID, "employee_id", created.EmployeeID, "issued_by", adminID)
	return mapWarningToResponse(created), nil
}

// CreateFromAttendance implements warning.WarningService.
func (s *WarningServiceImpl) CreateFromAttendance(ctx context.Context, employeeID string, date time.Time, reason string) (bool, error) {
	return s.WarningRepository.CreateIfAbsent(ctx, warning.Warning{
		EmployeeID: employeeID,
		Date:       date,
		Reason:     reason,
		Source:     warning.SourceAttendance,
	})
}

// ListWarnings implements warning.WarningService.
func (s *WarningServiceImpl) ListWarnings(ctx context.Context, filter warning.WarningFilter) (warning.ListWarningResponse, error) {
	if err := filter.Validate(); err != nil {
		return warning.ListWarningResponse{}, err
	}

	warnings, total, err := s.WarningRepository.List(ctx, filter)
	if err != nil {
		return warning.ListWarningResponse{}, fmt.Errorf("failed to list warnings: %w", err)
	}

	responses := make([]warning.WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		responses = append(responses, mapWarningToResponse(w))
	}
	return warning.ListWarningResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: utils.TotalPages(total, filter.Limit),
		Warnings:   responses,
	}, nil
}

// ListMyWarnings implements warning.WarningService.
func (s *WarningServiceImpl) ListMyWarnings(ctx context.Context, filter warning.WarningFilter) (warning.ListWarningResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return warning.ListWarningResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return s.ListWarnings(ctx, filter)
}

// AcknowledgeWarning implements warning.WarningService. Only the recipient
// can acknowledge.
func (s *WarningServiceImpl) AcknowledgeWarning(ctx context.Context, id string) (warning.WarningResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return warning.WarningResponse{}, err
	}

	w, err := s.WarningRepository.GetByID(ctx, id)
	if err != nil {
		return warning.WarningResponse{}, err
	}
	if w.EmployeeID != employeeID {
		return warning.WarningResponse{}, warning.ErrNotWarningRecipient
	}
	if err := s.WarningRepository.Acknowledge(ctx, id); err != nil {
		return warning.WarningResponse{}, err
	}

	updated, err := s.WarningRepository.GetByID(ctx, id)
	if err != nil {
		return warning.WarningResponse{}, err
	}
	return mapWarningToResponse(updated), nil
}

// DeleteWarning implements warning.WarningService.
func (s *WarningServiceImpl) DeleteWarning(ctx context.Context, id string) error {
	if err := s.WarningRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Warning deleted", "warning_id", id)
	return nil
}

func mapWarningToResponse(w warning.Warning) warning.WarningResponse {
	return warning.WarningResponse{
		ID:             w.ID,
		EmployeeID:     w.EmployeeID,
		EmployeeName:   w.EmployeeName,
		Date:           utils.FormatDate(w.Date),
		Reason:         w.Reason,
		Source:         string(w.Source),
		IssuedBy:       w.IssuedBy,
		AcknowledgedAt: utils.FormatTimePtr(w.AcknowledgedAt),
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
}
