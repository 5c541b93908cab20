package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
)

// Analyze reconciles the leave decision, physical presence and work evidence
// of one employee-day into a final status with exception, warning and
// penalty decisions. It is pure and safe for concurrent use.
func Analyze(in attendance.DayInput) attendance.Analysis {
	a := attendance.Analysis{
		FinalStatus: attendance.StatusAbsent,
		// The two sources overlap; the higher reading is the worked time.
		WorkMinutes: max(in.Evidence.TagMinutes, in.Evidence.FlowaceMinutes),
		Notes:       []string{},
	}

	present := in.Presence != nil && in.Presence.CheckIn != nil
	worked := in.Evidence.HasAnyWork

	if in.Leave == nil {
		analyzeNormalDay(&a, present, worked)
		return a
	}

	switch in.Leave.Status {
	case leave.LeaveStatusPending:
		analyzePendingLeave(&a, present, worked)
	case leave.LeaveStatusApproved:
		analyzeApprovedLeave(&a, in.Leave.Type, present, worked)
	case leave.LeaveStatusDenied:
		analyzeDeniedLeave(&a, present, worked)
	default:
		markUnmodeled(&a, fmt.Sprintf("No rule for leave status %q - needs review", in.Leave.Status))
	}

	return a
}

func analyzeNormalDay(a *attendance.Analysis, present, worked bool) {
	switch {
	case present && worked:
		a.FinalStatus = attendance.StatusPresent
		a.Notes = append(a.Notes, "Normal working day")
	case present:
		a.FinalStatus = attendance.StatusPresent
		a.HasException = true
		a.ExceptionType = attendance.ExceptionWorkWithoutCheckIn
		a.ShouldIssueWarning = true
		a.Notes = append(a.Notes, "Present but no work activity recorded")
	case worked:
		a.FinalStatus = attendance.StatusPresent
		a.HasException = true
		a.ExceptionType = attendance.ExceptionWorkWithoutCheckIn
		a.ShouldIssueWarning = true
		a.Notes = append(a.Notes, "Work logged without check-in - possible unauthorized WFH")
	default:
		a.FinalStatus = attendance.StatusAbsent
		a.ShouldIssuePenalty = true
		a.Notes = append(a.Notes, "Absent without leave request")
	}
}

func analyzePendingLeave(a *attendance.Analysis, present, worked bool) {
	if present || worked {
		a.FinalStatus = attendance.StatusPresent
		a.Notes = append(a.Notes, "Worked while leave request is pending")
		return
	}

	// Flagged without a category; stored as a NULL exception type.
	a.FinalStatus = attendance.StatusAbsent
	a.HasException = true
	a.ShouldIssueWarning = true
	a.Notes = append(a.Notes, "Absent with pending leave request - treating as unauthorized absence")
}

func analyzeApprovedLeave(a *attendance.Analysis, leaveType leave.LeaveType, present, worked bool) {
	switch leaveType {
	case leave.LeaveTypeFullLeave:
		a.FinalStatus = attendance.StatusLeaveApproved
		if present || worked {
			a.HasException = true
			a.ExceptionType = attendance.ExceptionWorkedOnApprovedLeave
			a.Notes = append(a.Notes, "Worked during approved full leave - work will be counted but flagged")
			return
		}
		a.Notes = append(a.Notes, "On approved full leave")

	case leave.LeaveTypeWorkFromHome:
		// Physical presence is irrelevant on a WFH day.
		a.FinalStatus = attendance.StatusWFHApproved
		if worked {
			a.Notes = append(a.Notes, "Successfully worked from home")
			return
		}
		a.HasException = true
		a.ExceptionType = attendance.ExceptionNoWorkOnWFH
		a.ShouldIssueWarning = true
		a.Notes = append(a.Notes, "WFH approved but no work activity recorded")

	case leave.LeaveTypeSickLeave, leave.LeaveTypeCasualLeave, leave.LeaveTypeEmergencyLeave:
		markUnmodeled(a, fmt.Sprintf("No rule for approved %s - needs review", leaveType))

	default:
		markUnmodeled(a, fmt.Sprintf("No rule for leave type %q - needs review", leaveType))
	}
}

func analyzeDeniedLeave(a *attendance.Analysis, present, worked bool) {
	a.HasException = true
	if present || worked {
		a.FinalStatus = attendance.StatusPresent
		a.ExceptionType = attendance.ExceptionWorkedDespiteDenial
		a.Notes = append(a.Notes, "Worked despite leave denial - commendable")
		return
	}

	a.FinalStatus = attendance.StatusAbsent
	a.ExceptionType = attendance.ExceptionAbsentDespiteDenial
	a.ShouldIssuePenalty = true
	a.Notes = append(a.Notes, "Absent despite leave denial - unauthorized absence")
}

// markUnmodeled leaves the fallback result untouched apart from the flag and note.
func markUnmodeled(a *attendance.Analysis, note string) {
	a.Unmodeled = true
	a.Notes = append(a.Notes, note)
}
