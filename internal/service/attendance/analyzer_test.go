package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkedIn() *attendance.PresenceSignal {
	t := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &attendance.PresenceSignal{CheckIn: &t}
}

func leaveOf(t leave.LeaveType, s leave.LeaveStatus) *attendance.LeaveSignal {
	return &attendance.LeaveSignal{Type: t, Status: s}
}

var noWork = attendance.NewWorkEvidence(0, 0)

// dayInputs returns every presence/work combination for a leave signal.
func dayInputs(l *attendance.LeaveSignal) []struct {
	present, worked bool
	in              attendance.DayInput
} {
	var out []struct {
		present, worked bool
		in              attendance.DayInput
	}
	for _, present := range []bool{true, false} {
		for _, worked := range []bool{true, false} {
			in := attendance.DayInput{Leave: l, Evidence: noWork}
			if present {
				in.Presence = checkedIn()
			}
			if worked {
				in.Evidence = attendance.NewWorkEvidence(90, 30)
			}
			out = append(out, struct {
				present, worked bool
				in              attendance.DayInput
			}{present, worked, in})
		}
	}
	return out
}

func TestAnalyze_NormalDayPresentAndWorked(t *testing.T) {
	got := Analyze(attendance.DayInput{
		Presence: checkedIn(),
		Evidence: attendance.NewWorkEvidence(480, 0),
	})

	assert.Equal(t, attendance.StatusPresent, got.FinalStatus)
	assert.False(t, got.HasException)
	assert.False(t, got.ShouldIssueWarning)
	assert.False(t, got.ShouldIssuePenalty)
	assert.Equal(t, 480, got.WorkMinutes)
	assert.Equal(t, []string{"Normal working day"}, got.Notes)
	assert.False(t, got.Unmodeled)
}

func TestAnalyze_NormalDayFullyAbsent(t *testing.T) {
	got := Analyze(attendance.DayInput{Evidence: noWork})

	assert.Equal(t, attendance.StatusAbsent, got.FinalStatus)
	assert.False(t, got.HasException)
	assert.False(t, got.ShouldIssueWarning)
	assert.True(t, got.ShouldIssuePenalty)
	assert.Equal(t, []string{"Absent without leave request"}, got.Notes)
}

func TestAnalyze_NormalDayPresentWithoutWork(t *testing.T) {
	got := Analyze(attendance.DayInput{Presence: checkedIn(), Evidence: noWork})

	assert.Equal(t, attendance.StatusPresent, got.FinalStatus)
	assert.True(t, got.HasException)
	assert.Equal(t, attendance.ExceptionWorkWithoutCheckIn, got.ExceptionType)
	assert.True(t, got.ShouldIssueWarning)
	assert.False(t, got.ShouldIssuePenalty)
	assert.Equal(t, []string{"Present but no work activity recorded"}, got.Notes)
}

func TestAnalyze_NormalDayWorkWithoutCheckIn(t *testing.T) {
	got := Analyze(attendance.DayInput{Evidence: attendance.NewWorkEvidence(0, 240)})

	assert.Equal(t, attendance.StatusPresent, got.FinalStatus)
	assert.True(t, got.HasException)
	assert.Equal(t, attendance.ExceptionWorkWithoutCheckIn, got.ExceptionType)
	assert.True(t, got.ShouldIssueWarning)
	assert.False(t, got.ShouldIssuePenalty)
	assert.Equal(t, 240, got.WorkMinutes)
	assert.Equal(t, []string{"Work logged without check-in - possible unauthorized WFH"}, got.Notes)
}

func TestAnalyze_NormalDayPresenceWithoutCheckInIsAbsent(t *testing.T) {
	// A record with only a check-out is not presence.
	out := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	got := Analyze(attendance.DayInput{
		Presence: &attendance.PresenceSignal{CheckOut: &out},
		Evidence: noWork,
	})

	assert.Equal(t, attendance.StatusAbsent, got.FinalStatus)
	assert.True(t, got.ShouldIssuePenalty)
}

func TestAnalyze_NormalDayProperties(t *testing.T) {
	for _, c := range dayInputs(nil) {
		got := Analyze(c.in)

		absent := !c.present && !c.worked
		assert.Equal(t, absent, got.FinalStatus == attendance.StatusAbsent, "present=%v worked=%v", c.present, c.worked)
		if absent {
			assert.True(t, got.ShouldIssuePenalty)
			assert.False(t, got.ShouldIssueWarning)
		}
		if c.present != c.worked {
			assert.True(t, got.HasException)
			assert.Equal(t, attendance.ExceptionWorkWithoutCheckIn, got.ExceptionType)
			assert.True(t, got.ShouldIssueWarning)
			assert.False(t, got.ShouldIssuePenalty)
		}
	}
}

func TestAnalyze_PendingLeaveWorked(t *testing.T) {
	for _, c := range dayInputs(leaveOf(leave.LeaveTypeCasualLeave, leave.LeaveStatusPending)) {
		if !c.present && !c.worked {
			continue
		}
		got := Analyze(c.in)

		assert.Equal(t, attendance.StatusPresent, got.FinalStatus)
		assert.False(t, got.HasException)
		assert.False(t, got.ShouldIssueWarning)
		assert.False(t, got.ShouldIssuePenalty)
		assert.Equal(t, []string{"Worked while leave request is pending"}, got.Notes)
	}
}

func TestAnalyze_PendingLeaveAbsent(t *testing.T) {
	got := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeFullLeave, leave.LeaveStatusPending),
		Evidence: noWork,
	})

	assert.Equal(t, attendance.StatusAbsent, got.FinalStatus)
	assert.True(t, got.HasException)
	assert.Empty(t, got.ExceptionType)
	assert.True(t, got.ShouldIssueWarning)
	assert.False(t, got.ShouldIssuePenalty)
	assert.Equal(t, []string{"Absent with pending leave request - treating as unauthorized absence"}, got.Notes)
}

func TestAnalyze_ApprovedFullLeaveIdle(t *testing.T) {
	got := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeFullLeave, leave.LeaveStatusApproved),
		Evidence: noWork,
	})

	assert.Equal(t, attendance.StatusLeaveApproved, got.FinalStatus)
	assert.False(t, got.HasException)
	assert.Equal(t, []string{"On approved full leave"}, got.Notes)
}

func TestAnalyze_ApprovedFullLeaveProperties(t *testing.T) {
	for _, c := range dayInputs(leaveOf(leave.LeaveTypeFullLeave, leave.LeaveStatusApproved)) {
		got := Analyze(c.in)

		assert.Equal(t, attendance.StatusLeaveApproved, got.FinalStatus)
		assert.Equal(t, c.present || c.worked, got.HasException)
		assert.False(t, got.ShouldIssueWarning)
		assert.False(t, got.ShouldIssuePenalty)
		if got.HasException {
			assert.Equal(t, attendance.ExceptionWorkedOnApprovedLeave, got.ExceptionType)
		}
	}
}

func TestAnalyze_ApprovedFullLeaveWorkIsStillCounted(t *testing.T) {
	got := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeFullLeave, leave.LeaveStatusApproved),
		Evidence: attendance.NewWorkEvidence(120, 150),
	})

	assert.Equal(t, attendance.StatusLeaveApproved, got.FinalStatus)
	assert.Equal(t, attendance.ExceptionWorkedOnApprovedLeave, got.ExceptionType)
	assert.Equal(t, 150, got.WorkMinutes)
	assert.Equal(t, []string{"Worked during approved full leave - work will be counted but flagged"}, got.Notes)
}

func TestAnalyze_ApprovedWFHNoWork(t *testing.T) {
	got := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeWorkFromHome, leave.LeaveStatusApproved),
		Evidence: noWork,
	})

	assert.Equal(t, attendance.StatusWFHApproved, got.FinalStatus)
	assert.True(t, got.HasException)
	assert.Equal(t, attendance.ExceptionNoWorkOnWFH, got.ExceptionType)
	assert.True(t, got.ShouldIssueWarning)
	assert.False(t, got.ShouldIssuePenalty)
	assert.Equal(t, []string{"WFH approved but no work activity recorded"}, got.Notes)
}

func TestAnalyze_ApprovedWFHProperties(t *testing.T) {
	for _, c := range dayInputs(leaveOf(leave.LeaveTypeWorkFromHome, leave.LeaveStatusApproved)) {
		got := Analyze(c.in)

		assert.Equal(t, attendance.StatusWFHApproved, got.FinalStatus)
		assert.Equal(t, !c.worked, got.ShouldIssueWarning, "present=%v worked=%v", c.present, c.worked)
		if c.worked {
			assert.False(t, got.HasException)
			assert.Equal(t, []string{"Successfully worked from home"}, got.Notes)
		}
	}
}

func TestAnalyze_DeniedLeaveWorkedAnyway(t *testing.T) {
	got := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeCasualLeave, leave.LeaveStatusDenied),
		Presence: checkedIn(),
		Evidence: attendance.NewWorkEvidence(200, 180),
	})

	assert.Equal(t, attendance.StatusPresent, got.FinalStatus)
	assert.True(t, got.HasException)
	assert.Equal(t, attendance.ExceptionWorkedDespiteDenial, got.ExceptionType)
	assert.False(t, got.ShouldIssueWarning)
	assert.False(t, got.ShouldIssuePenalty)
	assert.Equal(t, 200, got.WorkMinutes)
	assert.Equal(t, []string{"Worked despite leave denial - commendable"}, got.Notes)
}

func TestAnalyze_DeniedLeaveAbsent(t *testing.T) {
	got := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeSickLeave, leave.LeaveStatusDenied),
		Evidence: noWork,
	})

	assert.Equal(t, attendance.StatusAbsent, got.FinalStatus)
	assert.True(t, got.HasException)
	assert.Equal(t, attendance.ExceptionAbsentDespiteDenial, got.ExceptionType)
	assert.True(t, got.ShouldIssuePenalty)
	assert.Equal(t, []string{"Absent despite leave denial - unauthorized absence"}, got.Notes)
}

func TestAnalyze_DeniedLeaveProperties(t *testing.T) {
	for _, lt := range []leave.LeaveType{leave.LeaveTypeFullLeave, leave.LeaveTypeWorkFromHome, leave.LeaveTypeEmergencyLeave} {
		for _, c := range dayInputs(leaveOf(lt, leave.LeaveStatusDenied)) {
			got := Analyze(c.in)

			assert.Equal(t, !c.present && !c.worked, got.ShouldIssuePenalty)
			assert.False(t, got.ShouldIssueWarning)
		}
	}
}

func TestAnalyze_ApprovedLeaveWithoutRuleIsUnmodeled(t *testing.T) {
	for _, lt := range []leave.LeaveType{leave.LeaveTypeSickLeave, leave.LeaveTypeCasualLeave, leave.LeaveTypeEmergencyLeave} {
		got := Analyze(attendance.DayInput{
			Leave:    leaveOf(lt, leave.LeaveStatusApproved),
			Presence: checkedIn(),
			Evidence: attendance.NewWorkEvidence(60, 0),
		})

		assert.True(t, got.Unmodeled, "leave type %s", lt)
		assert.Equal(t, attendance.StatusAbsent, got.FinalStatus)
		assert.False(t, got.HasException)
		assert.False(t, got.ShouldIssueWarning)
		assert.False(t, got.ShouldIssuePenalty)
		assert.Equal(t, 60, got.WorkMinutes)
		require.Len(t, got.Notes, 1)
		assert.Contains(t, got.Notes[0], string(lt))
	}
}

func TestAnalyze_UnknownLeaveValuesAreUnmodeled(t *testing.T) {
	unknownStatus := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeFullLeave, leave.LeaveStatus("ESCALATED")),
		Evidence: noWork,
	})
	assert.True(t, unknownStatus.Unmodeled)
	assert.False(t, unknownStatus.ShouldIssuePenalty)

	unknownType := Analyze(attendance.DayInput{
		Leave:    leaveOf(leave.LeaveType("SABBATICAL"), leave.LeaveStatusApproved),
		Evidence: noWork,
	})
	assert.True(t, unknownType.Unmodeled)
}

func TestAnalyze_WorkMinutesIsMaxNotSum(t *testing.T) {
	leaves := []*attendance.LeaveSignal{
		nil,
		leaveOf(leave.LeaveTypeFullLeave, leave.LeaveStatusPending),
		leaveOf(leave.LeaveTypeFullLeave, leave.LeaveStatusApproved),
		leaveOf(leave.LeaveTypeWorkFromHome, leave.LeaveStatusApproved),
		leaveOf(leave.LeaveTypeSickLeave, leave.LeaveStatusApproved),
		leaveOf(leave.LeaveTypeCasualLeave, leave.LeaveStatusDenied),
	}
	minutes := [][2]int{{0, 0}, {480, 0}, {0, 300}, {200, 180}, {45, 46}}

	for _, l := range leaves {
		for _, m := range minutes {
			got := Analyze(attendance.DayInput{Leave: l, Evidence: attendance.NewWorkEvidence(m[0], m[1])})
			assert.Equal(t, max(m[0], m[1]), got.WorkMinutes)
		}
	}
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	in := attendance.DayInput{
		Leave:    leaveOf(leave.LeaveTypeWorkFromHome, leave.LeaveStatusApproved),
		Presence: checkedIn(),
		Evidence: attendance.NewWorkEvidence(10, 20),
	}

	assert.Equal(t, Analyze(in), Analyze(in))
}
