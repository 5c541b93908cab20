package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	ErrCheckOutBeforeCheckIn = errors.New("check_out must be after check_in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrFutureDate         = errors.New("cannot reconcile a date in the future")

	// Import errors
	ErrInvalidWorkbook = errors.New("invalid attendance workbook")
	ErrMissingColumns  = errors.New("attendance workbook is missing required columns")
)
