package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string `json:"-"`
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

type AttendanceResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  *string  `json:"employee_name,omitempty"`
	EmployeeCode  *string  `json:"employee_code,omitempty"`
	Date          string   `json:"date"`
	CheckIn       *string  `json:"check_in,omitempty"`
	CheckOut      *string  `json:"check_out,omitempty"`
	TotalHours    *float64 `json:"total_hours,omitempty"`
	Status        string   `json:"status"`
	ManualStatus  bool     `json:"manual_status"`
	HasException  bool     `json:"has_exception"`
	ExceptionType *string  `json:"exception_type,omitempty"`
	WorkMinutes   int      `json:"work_minutes"`
	Notes         []string `json:"notes"`
	StatusColor   string   `json:"status_color"`
	StatusMessage string   `json:"status_message"`
	AnalyzedAt    *string  `json:"analyzed_at,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID   *string `json:"employee_id,omitempty"`
	Date         *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status       *string `json:"status,omitempty"`
	HasException *bool   `json:"has_exception,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, check_in, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	errs := validator.ValidatePage(&f.Page, &f.Limit)

	if f.Status != nil {
		*f.Status = strings.ToUpper(*f.Status)
		if !AttendanceStatus(*f.Status).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PRESENT, ABSENT, LEAVE_APPROVED, WFH_APPROVED, LATE, HALF_DAY",
			})
		}
	}

	// Date validation
	dates := []struct {
		field string
		value *string
	}{{"date", f.Date}, {"start_date", f.StartDate}, {"end_date", f.EndDate}}
	for _, d := range dates {
		if d.value != nil && *d.value != "" {
			if _, valid := validator.IsValidDate(*d.value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   d.field,
					Message: d.field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_name", "check_in", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_name, check_in, status",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// UpdateAttendanceRequest lets an admin fix a record, e.g. a forgotten check-out.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	CheckIn  *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut *string `json:"check_out,omitempty"` // RFC3339
	Status   *string `json:"status,omitempty"`

	// ClearOverride hands the status back to the reconciler.
	ClearOverride bool `json:"clear_override"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	var checkIn, checkOut time.Time
	if r.CheckIn != nil {
		t, valid := validator.IsValidDateTime(*r.CheckIn)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an RFC3339 timestamp",
			})
		}
		checkIn = t
	}
	if r.CheckOut != nil {
		t, valid := validator.IsValidDateTime(*r.CheckOut)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an RFC3339 timestamp",
			})
		}
		checkOut = t
	}
	if !checkIn.IsZero() && !checkOut.IsZero() && checkOut.Before(checkIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be after check_in",
		})
	}

	if r.Status != nil {
		*r.Status = strings.ToUpper(*r.Status)
		if !AttendanceStatus(*r.Status).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PRESENT, ABSENT, LEAVE_APPROVED, WFH_APPROVED, LATE, HALF_DAY",
			})
		}
		if r.ClearOverride {
			errs = append(errs, validator.ValidationError{
				Field:   "clear_override",
				Message: "clear_override cannot be combined with status",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RECONCILIATION DTOs
// ========================================

type ReconcileRequest struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *ReconcileRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReconcileResult struct {
	EmployeeID      string   `json:"employee_id"`
	Date            string   `json:"date"`
	Analysis        Analysis `json:"analysis"`
	StatusPersisted bool     `json:"status_persisted"`
	WarningIssued   bool     `json:"warning_issued"`
	PenaltyIssued   bool     `json:"penalty_issued"`
}

type ReconcileFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type ReconcileSummary struct {
	Date       string             `json:"date"`
	Total      int                `json:"total"`
	Reconciled int                `json:"reconciled"`
	Exceptions int                `json:"exceptions"`
	Warnings   int                `json:"warnings"`
	Penalties  int                `json:"penalties"`
	Unmodeled  int                `json:"unmodeled"`
	Failures   []ReconcileFailure `json:"failures"`
}

// ========================================
// IMPORT / EXPORT DTOs
// ========================================

type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportAttendanceResponse struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors"`
}

type ExportAttendanceRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *ExportAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	start, validStart := validator.IsValidDate(r.StartDate)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, validEnd := validator.IsValidDate(r.EndDate)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if validStart && validEnd {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if end.Sub(start) > 366*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "export range must not exceed one year",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportAttendanceResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Rows int    `json:"rows"`
}
