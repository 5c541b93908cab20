package tag

import "time"

// Tag is a unit of work. Logging N units of a tag counts N*TimeMinutes of work.
type Tag struct {
	ID          string
	Name        string
	TimeMinutes int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Assignment struct {
	EmployeeID string
	TagID      string
	AssignedAt time.Time

	// Relationships (for responses)
	TagName     string
	TimeMinutes int
	IsActive    bool
}
