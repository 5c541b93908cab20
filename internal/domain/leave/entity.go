package leave

import "time"

// LeaveType is the kind of absence an employee asks for.
type LeaveType string

const (
	LeaveTypeFullLeave      LeaveType = "FULL_LEAVE"
	LeaveTypeWorkFromHome   LeaveType = "WORK_FROM_HOME"
	LeaveTypeSickLeave      LeaveType = "SICK_LEAVE"
	LeaveTypeCasualLeave    LeaveType = "CASUAL_LEAVE"
	LeaveTypeEmergencyLeave LeaveType = "EMERGENCY_LEAVE"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveTypeFullLeave, LeaveTypeWorkFromHome, LeaveTypeSickLeave,
		LeaveTypeCasualLeave, LeaveTypeEmergencyLeave:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusDenied   LeaveStatus = "DENIED"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusDenied:
		return true
	}
	return false
}

// LeaveRequest entity. One request per employee per date.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Type       LeaveType
	Status     LeaveStatus
	Reason     string

	DecidedBy    *string
	DecidedAt    *time.Time
	DecisionNote *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
	EmployeeCode *string
}
