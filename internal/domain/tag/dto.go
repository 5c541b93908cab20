package tag

import "github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"

type CreateTagRequest struct {
	Name        string `json:"name"`
	TimeMinutes int    `json:"time_minutes"`
}

func (r *CreateTagRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if r.TimeMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "time_minutes",
			Message: "time_minutes must be a positive integer",
		})
	} else if r.TimeMinutes > 24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "time_minutes",
			Message: "time_minutes must not exceed 1440",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTagRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	TimeMinutes *int    `json:"time_minutes,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateTagRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.TimeMinutes != nil && (*r.TimeMinutes <= 0 || *r.TimeMinutes > 24*60) {
		errs = append(errs, validator.ValidationError{
			Field:   "time_minutes",
			Message: "time_minutes must be between 1 and 1440",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignTagRequest struct {
	EmployeeID string `json:"employee_id"`
	TagID      string `json:"tag_id"`
}

func (r *AssignTagRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.TagID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tag_id",
			Message: "tag_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TagFilter struct {
	Search   *string `json:"search,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TagFilter) Validate() error {
	errs := validator.ValidatePage(&f.Page, &f.Limit)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TagResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TimeMinutes int    `json:"time_minutes"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ListTagResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Tags       []TagResponse `json:"tags"`
}

type AssignmentResponse struct {
	EmployeeID  string `json:"employee_id"`
	TagID       string `json:"tag_id"`
	TagName     string `json:"tag_name"`
	TimeMinutes int    `json:"time_minutes"`
	IsActive    bool   `json:"is_active"`
	AssignedAt  string `json:"assigned_at"`
}
