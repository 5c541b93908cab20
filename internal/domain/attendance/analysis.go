package attendance

import (
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
)

// DayInput is one employee-day as seen by the analyzer.
type DayInput struct {
	// Leave is nil when no request was filed for the day.
	Leave    *LeaveSignal
	Presence *PresenceSignal
	Evidence WorkEvidence
}

type LeaveSignal struct {
	Type   leave.LeaveType
	Status leave.LeaveStatus
}

type PresenceSignal struct {
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours *float64
}

// WorkEvidence is the aggregated minutes from both work sources.
// HasAnyWork must be true iff either count is above zero.
type WorkEvidence struct {
	TagMinutes     int  `json:"tag_minutes"`
	FlowaceMinutes int  `json:"flowace_minutes"`
	HasAnyWork     bool `json:"has_any_work"`
}

func NewWorkEvidence(tagMinutes, flowaceMinutes int) WorkEvidence {
	return WorkEvidence{
		TagMinutes:     tagMinutes,
		FlowaceMinutes: flowaceMinutes,
		HasAnyWork:     tagMinutes > 0 || flowaceMinutes > 0,
	}
}

type Analysis struct {
	FinalStatus        AttendanceStatus    `json:"final_status"`
	HasException       bool                `json:"has_exception"`
	ExceptionType      AttendanceException `json:"exception_type,omitempty"`
	ShouldIssueWarning bool                `json:"should_issue_warning"`
	ShouldIssuePenalty bool                `json:"should_issue_penalty"`
	WorkMinutes        int                 `json:"work_minutes"`
	Notes              []string            `json:"notes"`

	// Unmodeled is set when no rule covers the leave type/status combination.
	// FinalStatus then holds the fallback default and must not be persisted.
	Unmodeled bool `json:"unmodeled"`
}
