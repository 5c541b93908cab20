package worklog

import "time"

// Entry is the count of one tag an employee logged for a day. Minutes is
// snapshotted from the tag when the entry is saved.
type Entry struct {
	ID          string
	EmployeeID  string
	TagID       string
	Date        time.Time
	Count       int
	Minutes     int
	Submitted   bool
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	TagName *string
}

const SourceFlowace = "flowace"

// ActivityRecord is the active time an external monitor reported for a day.
type ActivityRecord struct {
	EmployeeID    string
	Date          time.Time
	Source        string
	ActiveMinutes int
	SyncedAt      time.Time
}
