package penalty

import "time"

type Source string

const (
	SourceAttendance Source = "attendance"
	SourceManual     Source = "manual"
)

type Status string

const (
	StatusActive Status = "active"
	StatusWaived Status = "waived"
)

type Penalty struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Reason      string
	Source      Source
	Status      Status
	IssuedBy    *string
	WaivedBy    *string
	WaivedAt    *time.Time
	WaiveReason *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	EmployeeName *string
}
