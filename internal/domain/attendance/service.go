package attendance

import (
	"context"
	"io"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the first check-in of the day for the authenticated employee
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's record and computes total hours
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance fixes a record (admin). Setting a status marks it as a manual override.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// ImportAttendance reads an XLSX workbook and upserts every valid row.
	ImportAttendance(ctx context.Context, r io.Reader) (ImportAttendanceResponse, error)

	// WriteReport renders the records of a date range as an XLSX workbook.
	WriteReport(ctx context.Context, req ExportAttendanceRequest, w io.Writer) error

	// ExportReport renders the report into file storage and returns its URL.
	ExportReport(ctx context.Context, req ExportAttendanceRequest) (ExportAttendanceResponse, error)
}

// Reconciler turns the stored signals of an employee-day into a persisted analysis.
type Reconciler interface {
	ReconcileDay(ctx context.Context, employeeID string, date time.Time) (ReconcileResult, error)
	ReconcileDate(ctx context.Context, date time.Time) (ReconcileSummary, error)
}
