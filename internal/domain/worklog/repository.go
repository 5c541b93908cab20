package worklog

import (
	"context"
	"time"
)

type EntryRepository interface {
	ListDay(ctx context.Context, employeeID string, date time.Time) ([]Entry, error)
	// Upsert writes one (employee, tag, date) entry.
	Upsert(ctx context.Context, e Entry) (Entry, error)
	IsDayLocked(ctx context.Context, employeeID string, date time.Time) (bool, error)
	// SetSubmitted flips the submitted flag of every entry of the day and
	// returns the number of entries touched.
	SetSubmitted(ctx context.Context, employeeID string, date time.Time, submitted bool) (int64, error)
	SumMinutes(ctx context.Context, employeeID string, date time.Time) (int, error)
}

type ActivityRepository interface {
	Upsert(ctx context.Context, r ActivityRecord) error
	// GetMinutes returns 0 when nothing was synced for the day.
	GetMinutes(ctx context.Context, employeeID string, date time.Time, source string) (int, error)
}
