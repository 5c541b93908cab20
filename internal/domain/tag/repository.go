package tag

import "context"

type TagRepository interface {
	Create(ctx context.Context, t Tag) (Tag, error)
	GetByID(ctx context.Context, id string) (Tag, error)
	List(ctx context.Context, filter TagFilter) ([]Tag, int64, error)
	Update(ctx context.Context, t Tag) error
}

type AssignmentRepository interface {
	Assign(ctx context.Context, employeeID, tagID string) (Assignment, error)
	Unassign(ctx context.Context, employeeID, tagID string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Assignment, error)
}
