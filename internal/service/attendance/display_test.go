package attendance

import (
	"testing"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestStatusColor_ExceptionAlwaysOrange(t *testing.T) {
	statuses := []attendance.AttendanceStatus{
		attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLeaveApproved,
		attendance.StatusWFHApproved, attendance.StatusLate, attendance.StatusHalfDay, "",
	}
	for _, s := range statuses {
		assert.Equal(t, "#f97316", StatusColor(s, true), "status %q", s)
	}
}

func TestStatusColor_Palette(t *testing.T) {
	assert.Equal(t, "#22c55e", StatusColor(attendance.StatusPresent, false))
	assert.Equal(t, "#3b82f6", StatusColor(attendance.StatusLeaveApproved, false))
	assert.Equal(t, "#eab308", StatusColor(attendance.StatusWFHApproved, false))
	assert.Equal(t, "#ef4444", StatusColor(attendance.StatusAbsent, false))
	assert.Equal(t, "#f59e0b", StatusColor(attendance.StatusLate, false))
	assert.Equal(t, "#a855f7", StatusColor(attendance.StatusHalfDay, false))
	assert.Equal(t, "#6b7280", StatusColor("", false))
}

func TestStatusMessage_PresentWithHours(t *testing.T) {
	a := attendance.Analysis{FinalStatus: attendance.StatusPresent, WorkMinutes: 480}

	assert.Equal(t, "Present (8h worked)", StatusMessage(a))
}

func TestStatusMessage_PresentWithException(t *testing.T) {
	a := attendance.Analysis{
		FinalStatus:   attendance.StatusPresent,
		WorkMinutes:   480,
		HasException:  true,
		ExceptionType: attendance.ExceptionWorkWithoutCheckIn,
	}

	assert.Equal(t, "Present (8h worked) - Work without check-in", StatusMessage(a))
}

func TestStatusMessage_RoundsHours(t *testing.T) {
	assert.Equal(t, "Working from home (3h worked)",
		StatusMessage(attendance.Analysis{FinalStatus: attendance.StatusWFHApproved, WorkMinutes: 200}))
	assert.Equal(t, "Present (1h worked)",
		StatusMessage(attendance.Analysis{FinalStatus: attendance.StatusPresent, WorkMinutes: 30}))
	assert.Equal(t, "Present (0h worked)",
		StatusMessage(attendance.Analysis{FinalStatus: attendance.StatusPresent, WorkMinutes: 29}))
}

func TestStatusMessage_NoHoursWithoutWork(t *testing.T) {
	assert.Equal(t, "Present", StatusMessage(attendance.Analysis{FinalStatus: attendance.StatusPresent}))
	assert.Equal(t, "Working from home - No work on WFH day", StatusMessage(attendance.Analysis{
		FinalStatus:   attendance.StatusWFHApproved,
		HasException:  true,
		ExceptionType: attendance.ExceptionNoWorkOnWFH,
	}))
}

func TestStatusMessage_HoursOnlyForPresentAndWFH(t *testing.T) {
	a := attendance.Analysis{
		FinalStatus:   attendance.StatusLeaveApproved,
		WorkMinutes:   300,
		HasException:  true,
		ExceptionType: attendance.ExceptionWorkedOnApprovedLeave,
	}

	assert.Equal(t, "On approved leave - Worked during leave", StatusMessage(a))
	assert.Equal(t, "Late", StatusMessage(attendance.Analysis{FinalStatus: attendance.StatusLate, WorkMinutes: 300}))
	assert.Equal(t, "Half day", StatusMessage(attendance.Analysis{FinalStatus: attendance.StatusHalfDay}))
	assert.Equal(t, "Unknown status", StatusMessage(attendance.Analysis{}))
}

func TestStatusMessage_UnclassifiedException(t *testing.T) {
	a := attendance.Analysis{FinalStatus: attendance.StatusAbsent, HasException: true}

	assert.Equal(t, "Absent - Exception flagged", StatusMessage(a))
}

func TestExceptionMessage(t *testing.T) {
	assert.Equal(t, "Work without check-in", ExceptionMessage(attendance.ExceptionWorkWithoutCheckIn))
	assert.Equal(t, "Worked during leave", ExceptionMessage(attendance.ExceptionWorkedOnApprovedLeave))
	assert.Equal(t, "No work on WFH day", ExceptionMessage(attendance.ExceptionNoWorkOnWFH))
	assert.Equal(t, "Absent despite denial", ExceptionMessage(attendance.ExceptionAbsentDespiteDenial))
	assert.Equal(t, "Worked despite denial", ExceptionMessage(attendance.ExceptionWorkedDespiteDenial))
	assert.Equal(t, "Exception flagged", ExceptionMessage("SOMETHING_ELSE"))
}
