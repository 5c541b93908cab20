package attendance

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
)

const (
	colorException = "#f97316"
	colorPresent   = "#22c55e"
	colorLeave     = "#3b82f6"
	colorWFH       = "#eab308"
	colorAbsent    = "#ef4444"
	colorLate      = "#f59e0b"
	colorHalfDay   = "#a855f7"
	colorUnknown   = "#6b7280"
)

// StatusColor returns the hex color a status is rendered with. Exceptions
// always render orange.
func StatusColor(status attendance.AttendanceStatus, hasException bool) string {
	if hasException {
		return colorException
	}

	switch status {
	case attendance.StatusPresent:
		return colorPresent
	case attendance.StatusLeaveApproved:
		return colorLeave
	case attendance.StatusWFHApproved:
		return colorWFH
	case attendance.StatusAbsent:
		return colorAbsent
	case attendance.StatusLate:
		return colorLate
	case attendance.StatusHalfDay:
		return colorHalfDay
	default:
		return colorUnknown
	}
}

// StatusMessage builds the one-line summary shown next to a day,
// e.g. "Present (8h worked) - Work without check-in".
func StatusMessage(a attendance.Analysis) string {
	var msg string
	switch a.FinalStatus {
	case attendance.StatusPresent:
		msg = "Present" + workedSuffix(a.WorkMinutes)
	case attendance.StatusWFHApproved:
		msg = "Working from home" + workedSuffix(a.WorkMinutes)
	case attendance.StatusAbsent:
		msg = "Absent"
	case attendance.StatusLeaveApproved:
		msg = "On approved leave"
	case attendance.StatusLate:
		msg = "Late"
	case attendance.StatusHalfDay:
		msg = "Half day"
	default:
		msg = "Unknown status"
	}

	if a.HasException {
		msg += " - " + ExceptionMessage(a.ExceptionType)
	}
	return msg
}

func workedSuffix(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%dh worked)", int(math.Round(float64(minutes)/60)))
}

func ExceptionMessage(e attendance.AttendanceException) string {
	switch e {
	case attendance.ExceptionWorkWithoutCheckIn:
		return "Work without check-in"
	case attendance.ExceptionWorkedOnApprovedLeave:
		return "Worked during leave"
	case attendance.ExceptionNoWorkOnWFH:
		return "No work on WFH day"
	case attendance.ExceptionAbsentDespiteDenial:
		return "Absent despite denial"
	case attendance.ExceptionWorkedDespiteDenial:
		return "Worked despite denial"
	default:
		return "Exception flagged"
	}
}

// analysisOf rebuilds the display-relevant part of an analysis from a stored record.
func analysisOf(a attendance.Attendance) attendance.Analysis {
	return attendance.Analysis{
		FinalStatus:   a.Status,
		HasException:  a.HasException,
		ExceptionType: a.ExceptionType,
		WorkMinutes:   a.WorkMinutes,
		Notes:         a.Notes,
	}
}
