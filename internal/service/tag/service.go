package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/tag"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

// EmployeeReader is the slice of the employee repository needed to validate assignments.
type EmployeeReader interface {
	GetByID(ctx context.Context, id string) (employee.Employee, error)
}

type TagServiceImpl struct {
	tag.TagRepository
	assignments tag.AssignmentRepository
	employees   EmployeeReader
}

func NewTagService(tagRepo tag.TagRepository, assignments tag.AssignmentRepository, employees EmployeeReader) *TagServiceImpl {
	return &TagServiceImpl{
		TagRepository: tagRepo,
		assignments:   assignments,
		employees:     employees,
	}
}

// CreateTag implements tag.TagService.
func (s *TagServiceImpl) CreateTag(ctx context.Context, req tag.CreateTagRequest) (tag.TagResponse, error) {
	if err := req.Validate(); err != nil {
		return tag.TagResponse{}, err
	}

	created, err := s.TagRepository.Create(ctx, tag.Tag{
		Name:        strings.TrimSpace(req.Name),
		TimeMinutes: req.TimeMinutes,
		IsActive:    true,
	})
	if err != nil {
		return tag.TagResponse{}, err
	}

	slog.Info("Tag created", "tag_id", created.ID, "name", created.Name, "time_minutes", created.TimeMinutes)
	return mapTagToResponse(created), nil
}

// GetTag implements tag.TagService.
func (s *TagServiceImpl) GetTag(ctx context.Context, id string) (tag.TagResponse, error) {
	t, err := s.TagRepository.GetByID(ctx, id)
	if err != nil {
		return tag.TagResponse{}, err
	}
	return mapTagToResponse(t), nil
}

// ListTags implements tag.TagService.
func (s *TagServiceImpl) ListTags(ctx context.Context, filter tag.TagFilter) (tag.ListTagResponse, error) {
	if err := filter.Validate(); err != nil {
		return tag.ListTagResponse{}, err
	}

	tags, total, err := s.TagRepository.List(ctx, filter)
	if err != nil {
		return tag.ListTagResponse{}, fmt.Errorf("failed to list tags: %w", err)
	}

	responses := make([]tag.TagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, mapTagToResponse(t))
	}

	return tag.ListTagResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: utils.TotalPages(total, filter.Limit),
		Tags:       responses,
	}, nil
}

// UpdateTag implements tag.TagService. Changing TimeMinutes does not touch
// entries already logged against the tag.
func (s *TagServiceImpl) UpdateTag(ctx context.Context, req tag.UpdateTagRequest) (tag.TagResponse, error) {
	if err := req.Validate(); err != nil {
		return tag.TagResponse{}, err
	}

	t, err := s.TagRepository.GetByID(ctx, req.ID)
	if err != nil {
		return tag.TagResponse{}, err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.TimeMinutes != nil {
		t.TimeMinutes = *req.TimeMinutes
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.TagRepository.Update(ctx, t); err != nil {
		return tag.TagResponse{}, err
	}

	updated, err := s.TagRepository.GetByID(ctx, t.ID)
	if err != nil {
		return tag.TagResponse{}, err
	}
	return mapTagToResponse(updated), nil
}

// DeleteTag implements tag.TagService.
func (s *TagServiceImpl) DeleteTag(ctx context.Context, id string) error {
	t, err := s.TagRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !t.IsActive {
		return nil
	}

	t.IsActive = false
	if err := s.TagRepository.Update(ctx, t); err != nil {
		return err
	}

	slog.Info("Tag deactivated", "tag_id", id)
	return nil
}

// AssignTag implements tag.TagService.
func (s *TagServiceImpl) AssignTag(ctx context.Context, req tag.AssignTagRequest) (tag.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return tag.AssignmentResponse{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return tag.AssignmentResponse{}, err
	}

	t, err := s.TagRepository.GetByID(ctx, req.TagID)
	if err != nil {
		return tag.AssignmentResponse{}, err
	}
	if !t.IsActive {
		return tag.AssignmentResponse{}, tag.ErrTagInactive
	}

	a, err := s.assignments.Assign(ctx, req.EmployeeID, req.TagID)
	if err != nil {
		return tag.AssignmentResponse{}, err
	}
	a.TagName = t.Name
	a.TimeMinutes = t.TimeMinutes
	a.IsActive = t.IsActive

	slog.Info("Tag assigned", "tag_id", t.ID, "employee_id", req.EmployeeID)
	return mapAssignmentToResponse(a), nil
}

// UnassignTag implements tag.TagService.
func (s *TagServiceImpl) UnassignTag(ctx context.Context, req tag.AssignTagRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.assignments.Unassign(ctx, req.EmployeeID, req.TagID)
}

// ListAssignedTags implements tag.TagService. Employees only see their own tags.
func (s *TagServiceImpl) ListAssignedTags(ctx context.Context, employeeID string) ([]tag.AssignmentResponse, error) {
	callerID, isAdmin, err := jwt.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !isAdmin || employeeID == "" {
		employeeID = callerID
	}

	assignments, err := s.assignments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tags: %w", err)
	}

	responses := make([]tag.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, mapAssignmentToResponse(a))
	}
	return responses, nil
}

func mapTagToResponse(t tag.Tag) tag.TagResponse {
	return tag.TagResponse{
		ID:          t.ID,
		Name:        t.Name,
		TimeMinutes: t.TimeMinutes,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func mapAssignmentToResponse(a tag.Assignment) tag.AssignmentResponse {
	return tag.AssignmentResponse{
		EmployeeID:  a.EmployeeID,
		TagID:       a.TagID,
		TagName:     a.TagName,
		TimeMinutes: a.TimeMinutes,
		IsActive:    a.IsActive,
		AssignedAt:  a.AssignedAt.Format(time.RFC3339),
	}
}
