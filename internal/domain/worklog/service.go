package worklog

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
)

type WorkLogService interface {
	// SaveEntries replaces the counts of the given tags for a draft day.
	SaveEntries(ctx context.Context, req SaveEntriesRequest) (DayLogResponse, error)
	// SubmitDay locks the day against further edits.
	SubmitDay(ctx context.Context, req DayRequest) (DayLogResponse, error)
	// UnlockDay reopens a submitted day (admin).
	UnlockDay(ctx context.Context, req DayRequest) (DayLogResponse, error)
	GetDay(ctx context.Context, req DayRequest) (DayLogResponse, error)
}

// EvidenceService aggregates both work sources for the analyzer.
type EvidenceService interface {
	GetWorkEvidence(ctx context.Context, employeeID string, date time.Time) (attendance.WorkEvidence, error)
}

// ActivitySyncService pulls monitor activity into activity_records.
type ActivitySyncService interface {
	SyncDate(ctx context.Context, date time.Time) (SyncSummary, error)
}
