package penalty

import (
	"context"
	"time"
)

type PenaltyService interface {
	CreatePenalty(ctx context.Context, req CreatePenaltyRequest) (PenaltyResponse, error)
	// CreateFromAttendance is idempotent per employee and date.
	CreateFromAttendance(ctx context.Context, employeeID string, date time.Time, reason string) (bool, error)
	ListPenalties(ctx context.Context, filter PenaltyFilter) (ListPenaltyResponse, error)
	ListMyPenalties(ctx context.Context, filter PenaltyFilter) (ListPenaltyResponse, error)
	WaivePenalty(ctx context.Context, req WaivePenaltyRequest) (PenaltyResponse, error)
}
