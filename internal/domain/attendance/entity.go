package attendance

import (
	"time"
)

type AttendanceStatus string

// LATE and HALF_DAY are only ever set manually or by spreadsheet import.
const (
	StatusPresent       AttendanceStatus = "PRESENT"
	StatusAbsent        AttendanceStatus = "ABSENT"
	StatusLeaveApproved AttendanceStatus = "LEAVE_APPROVED"
	StatusWFHApproved   AttendanceStatus = "WFH_APPROVED"
	StatusLate          AttendanceStatus = "LATE"
	StatusHalfDay       AttendanceStatus = "HALF_DAY"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeaveApproved, StatusWFHApproved, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// AttendanceException classifies a flagged day. The zero value means the day
// was flagged without a category.
type AttendanceException string

const (
	ExceptionWorkWithoutCheckIn    AttendanceException = "WORK_WITHOUT_CHECKIN"
	ExceptionWorkedOnApprovedLeave AttendanceException = "WORKED_ON_APPROVED_LEAVE"
	ExceptionNoWorkOnWFH           AttendanceException = "NO_WORK_ON_WFH"
	ExceptionAbsentDespiteDenial   AttendanceException = "ABSENT_DESPITE_DENIAL"
	ExceptionWorkedDespiteDenial   AttendanceException = "WORKED_DESPITE_DENIAL"
)

func (e AttendanceException) Valid() bool {
	switch e {
	case ExceptionWorkWithoutCheckIn, ExceptionWorkedOnApprovedLeave, ExceptionNoWorkOnWFH,
		ExceptionAbsentDespiteDenial, ExceptionWorkedDespiteDenial:
		return true
	}
	return false
}

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours *float64

	// Status is empty until the day has been checked in, imported or reconciled.
	Status        AttendanceStatus
	ManualStatus  bool
	HasException  bool
	ExceptionType AttendanceException
	WorkMinutes   int
	Notes         []string
	AnalyzedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

// Presence converts the stored check-in/out into the analyzer's presence signal.
func (a Attendance) Presence() *PresenceSignal {
	return &PresenceSignal{
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		TotalHours: a.TotalHours,
	}
}
