package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the day has no row.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// SaveAnalysis inserts or updates the analyzed fields of a day. An empty
	// Status keeps whatever status the row already has, and so does a row
	// whose status was set manually.
	SaveAnalysis(ctx context.Context, attendance Attendance) (Attendance, error)

	// UpsertImported writes presence and an optional manual status from a spreadsheet row.
	UpsertImported(ctx context.Context, attendance Attendance) (Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListRange returns every record between from and to inclusive, ordered by date then employee.
	ListRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
}
