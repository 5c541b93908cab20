package warning

import "time"

type Source string

const (
	SourceAttendance Source = "attendance"
	SourceManual     Source = "manual"
)

type Warning struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	Reason         string
	Source         Source
	IssuedBy       *string
	AcknowledgedAt *time.Time
	CreatedAt      time.Time

	// Relationships (for responses)
	EmployeeName *string
}
