package worklog

import "errors"

var (
	ErrDayLocked        = errors.New("work log for this day is already submitted")
	ErrDayNotSubmitted  = errors.New("work log for this day is not submitted")
	ErrNothingToSubmit  = errors.New("no work log entries to submit")
	ErrTagNotAssigned   = errors.New("tag is not assigned to employee")
	ErrFutureDate       = errors.New("cannot log work for a future date")
	ErrActivityDisabled = errors.New("activity monitor sync is not configured")
)
