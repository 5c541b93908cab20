package warning

import "github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"

type CreateWarningRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r *CreateWarningRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WarningFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	Source       *string `json:"source,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Acknowledged *bool   `json:"acknowledged,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *WarningFilter) Validate() error {
	errs := validator.ValidatePage(&f.Page, &f.Limit)

	if f.Source != nil && !validator.IsInSlice(*f.Source, []string{string(SourceAttendance), string(SourceManual)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: attendance, manual",
		})
	}

	if f.StartDate != nil {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WarningResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	Date           string  `json:"date"`
	Reason         string  `json:"reason"`
	Source         string  `json:"source"`
	IssuedBy       *string `json:"issued_by,omitempty"`
	AcknowledgedAt *string `json:"acknowledged_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type ListWarningResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Warnings   []WarningResponse `json:"warnings"`
}
