package penalty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/penalty"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

type Notifier interface {
	QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error
}

type PenaltyServiceImpl struct {
	penalty.PenaltyRepository
	notifier Notifier
}

func NewPenaltyService(penaltyRepository penalty.PenaltyRepository, notifier Notifier) *PenaltyServiceImpl {
	return &PenaltyServiceImpl{
		PenaltyRepository: penaltyRepository,
		notifier:          notifier,
	}
}

// CreatePenalty implements penalty.PenaltyService.
func (s *PenaltyServiceImpl) CreatePenalty(ctx context.Context, req penalty.CreatePenaltyRequest) (penalty.PenaltyResponse, error) {
	adminID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return penalty.PenaltyResponse{}, err
	}

	date, _ := utils.ParseDate(req.Date)
	created, err := s.PenaltyRepository.Create(ctx, penalty.Penalty{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Reason:     req.Reason,
		Source:     penalty.SourceManual,
		Status:     penalty.StatusActive,
		IssuedBy:   &adminID,
	})
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}

	err = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: created.EmployeeID,
		SenderID:    &adminID,
		Type:        notification.TypeAttendancePenalty,
		Title:       "Penalty issued",
		Message:     fmt.Sprintf("A penalty was recorded for %s: %s", req.Date, req.Reason),
		Data:        map[string]interface{}{"penalty_id": created.ID, "date": req.Date},
	})
	if err != nil {
		slog.Error("Failed to queue penalty notification", "penalty_id", created.ID, "error", err)
	}

	slog.Info("Penalty issued", "penalty_id", created.ID, "employee_id", created.EmployeeID, "issued_by", adminID)
	return mapPenaltyToResponse(created), nil
}

// CreateFromAttendance implements penalty.PenaltyService.
func (s *PenaltyServiceImpl) CreateFromAttendance(ctx context.Context, employeeID string, date time.Time, reason string) (bool, error) {
	return s.PenaltyRepository.CreateIfAbsent(ctx, penalty.Penalty{
		EmployeeID: employeeID,
		Date:       date,
		Reason:     reason,
		Source:     penalty.SourceAttendance,
		Status:     penalty.StatusActive,
	})
}

// ListPenalties implements penalty.PenaltyService.
func (s *PenaltyServiceImpl) ListPenalties(ctx context.Context, filter penalty.PenaltyFilter) (penalty.ListPenaltyResponse, error) {
	if err := filter.Validate(); err != nil {
		return penalty.ListPenaltyResponse{}, err
	}

	penalties, total, err := s.PenaltyRepository.List(ctx, filter)
	if err != nil {
		return penalty.ListPenaltyResponse{}, fmt.Errorf("failed to list penalties: %w", err)
	}

	responses := make([]penalty.PenaltyResponse, 0, len(penalties))
	for _, p := range penalties {
		responses = append(responses, mapPenaltyToResponse(p))
	}
	return penalty.ListPenaltyResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: utils.TotalPages(total, filter.Limit),
		Penalties:  responses,
	}, nil
}

// ListMyPenalties implements penalty.PenaltyService.
func (s *PenaltyServiceImpl) ListMyPenalties(ctx context.Context, filter penalty.PenaltyFilter) (penalty.ListPenaltyResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return penalty.ListPenaltyResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return s.ListPenalties(ctx, filter)
}

// WaivePenalty implements penalty.PenaltyService.
func (s *PenaltyServiceImpl) WaivePenalty(ctx context.Context, req penalty.WaivePenaltyRequest) (penalty.PenaltyResponse, error) {
	adminID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return penalty.PenaltyResponse{}, err
	}

	p, err := s.PenaltyRepository.GetByID(ctx, req.ID)
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}
	if p.Status == penalty.StatusWaived {
		return penalty.PenaltyResponse{}, penalty.ErrPenaltyAlreadyWaived
	}

	p.WaivedBy = &adminID
	p.WaiveReason = &req.Reason
	if err := s.PenaltyRepository.Waive(ctx, p); err != nil {
		return penalty.PenaltyResponse{}, err
	}
	slog.Info("Penalty waived", "penalty_id", p.ID, "waived_by", adminID)

	updated, err := s.PenaltyRepository.GetByID(ctx, p.ID)
	if err != nil {
		return penalty.PenaltyResponse{}, err
	}
	return mapPenaltyToResponse(updated), nil
}

func mapPenaltyToResponse(p penalty.Penalty) penalty.PenaltyResponse {
	return penalty.PenaltyResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Date:         utils.FormatDate(p.Date),
		Reason:       p.Reason,
		Source:       string(p.Source),
		Status:       string(p.Status),
		IssuedBy:     p.IssuedBy,
		WaivedBy:     p.WaivedBy,
		WaivedAt:     utils.FormatTimePtr(p.WaivedAt),
		WaiveReason:  p.WaiveReason,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
