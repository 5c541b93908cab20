package tag

import "context"

type TagService interface {
	CreateTag(ctx context.Context, req CreateTagRequest) (TagResponse, error)
	GetTag(ctx context.Context, id string) (TagResponse, error)
	ListTags(ctx context.Context, filter TagFilter) (ListTagResponse, error)
	UpdateTag(ctx context.Context, req UpdateTagRequest) (TagResponse, error)
	// DeleteTag deactivates a tag; existing work logs keep their snapshotted minutes.
	DeleteTag(ctx context.Context, id string) error

	AssignTag(ctx context.Context, req AssignTagRequest) (AssignmentResponse, error)
	UnassignTag(ctx context.Context, req AssignTagRequest) error
	ListAssignedTags(ctx context.Context, employeeID string) ([]AssignmentResponse, error)
}
