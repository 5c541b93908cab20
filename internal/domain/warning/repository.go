package warning

import (
	"context"
)

type WarningRepository interface {
	Create(ctx context.Context, w Warning) (Warning, error)
	// CreateIfAbsent inserts unless a warning already exists for the same
	// employee, date and source. created is false when nothing was written.
	CreateIfAbsent(ctx context.Context, w Warning) (created bool, err error)
	GetByID(ctx context.Context, id string) (Warning, error)
	List(ctx context.Context, filter WarningFilter) ([]Warning, int64, error)
	Acknowledge(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
