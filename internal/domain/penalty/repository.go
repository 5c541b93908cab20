package penalty

import "context"

type PenaltyRepository interface {
	Create(ctx context.Context, p Penalty) (Penalty, error)
	// CreateIfAbsent inserts unless a penalty already exists for the same
	// employee, date and source.
	CreateIfAbsent(ctx context.Context, p Penalty) (created bool, err error)
	GetByID(ctx context.Context, id string) (Penalty, error)
	List(ctx context.Context, filter PenaltyFilter) ([]Penalty, int64, error)
	Waive(ctx context.Context, p Penalty) error
}
