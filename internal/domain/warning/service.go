package warning

import (
	"context"
	"time"
)

type WarningService interface {
	CreateWarning(ctx context.Context, req CreateWarningRequest) (WarningResponse, error)
	// CreateFromAttendance is idempotent per employee and date.
	CreateFromAttendance(ctx context.Context, employeeID string, date time.Time, reason string) (bool, error)
	ListWarnings(ctx context.Context, filter WarningFilter) (ListWarningResponse, error)
	ListMyWarnings(ctx context.Context, filter WarningFilter) (ListWarningResponse, error)
	AcknowledgeWarning(ctx context.Context, id string) (WarningResponse, error)
	DeleteWarning(ctx context.Context, id string) error
}
