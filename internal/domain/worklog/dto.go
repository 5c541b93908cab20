package worklog

import (
	"fmt"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"
)

type EntryInput struct {
	TagID string `json:"tag_id"`
	Count int    `json:"count"`
}

type SaveEntriesRequest struct {
	EmployeeID string       `json:"-"`
	Date       string       `json:"date"` // YYYY-MM-DD
	Entries    []EntryInput `json:"entries"`
}

func (r *SaveEntriesRequest) Validate() error {
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

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: "at least one entry is required",
		})
	}

	seen := make(map[string]bool, len(r.Entries))
	for i, e := range r.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		if validator.IsEmpty(e.TagID) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".tag_id",
				Message: "tag_id is required",
			})
		} else if seen[e.TagID] {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".tag_id",
				Message: "tag_id appears more than once",
			})
		}
		seen[e.TagID] = true

		if e.Count < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".count",
				Message: "count must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (r *DayRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID      string  `json:"id"`
	TagID   string  `json:"tag_id"`
	TagName *string `json:"tag_name,omitempty"`
	Count   int     `json:"count"`
	Minutes int     `json:"minutes"`
}

type DayLogResponse struct {
	EmployeeID   string          `json:"employee_id"`
	Date         string          `json:"date"`
	Submitted    bool            `json:"submitted"`
	SubmittedAt  *string         `json:"submitted_at,omitempty"`
	TotalMinutes int             `json:"total_minutes"`
	Entries      []EntryResponse `json:"entries"`
}

type SyncSummary struct {
	Date      string   `json:"date"`
	Fetched   int      `json:"fetched"`
	Stored    int      `json:"stored"`
	Unmatched []string `json:"unmatched"`
}
