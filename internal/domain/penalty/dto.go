package penalty

import "github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"

type CreatePenaltyRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r *CreatePenaltyRequest) Validate() error {
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
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WaivePenaltyRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *WaivePenaltyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "waive reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PenaltyFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PenaltyFilter) Validate() error {
	errs := validator.ValidatePage(&f.Page, &f.Limit)

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusActive), string(StatusWaived)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, waived",
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

type PenaltyResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Reason       string  `json:"reason"`
	Source       string  `json:"source"`
	Status       string  `json:"status"`
	IssuedBy     *string `json:"issued_by,omitempty"`
	WaivedBy     *string `json:"waived_by,omitempty"`
	WaivedAt     *string `json:"waived_at,omitempty"`
	WaiveReason  *string `json:"waive_reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type ListPenaltyResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Penalties  []PenaltyResponse `json:"penalties"`
}
