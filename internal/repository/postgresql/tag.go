package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/tag"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
)

type tagRepositoryImpl struct {
	db *database.DB
}

func NewTagRepository(db *database.DB) tag.TagRepository {
	return &tagRepositoryImpl{db: db}
}

// Create implements tag.TagRepository.
func (r *tagRepositoryImpl) Create(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tags (name, time_minutes, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, t.Name, t.TimeMinutes, t.IsActive).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return tag.Tag{}, tag.ErrTagNameExists
		}
		return tag.Tag{}, fmt.Errorf("failed to create tag: %w", err)
	}
	return t, nil
}

// GetByID implements tag.TagRepository.
func (r *tagRepositoryImpl) GetByID(ctx context.Context, id string) (tag.Tag, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, time_minutes, is_active, created_at, updated_at FROM tags WHERE id = $1`

	var t tag.Tag
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.TimeMinutes, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return tag.Tag{}, tag.ErrTagNotFound
		}
		return tag.Tag{}, fmt.Errorf("failed to get tag: %w", err)
	}
	return t, nil
}

// List implements tag.TagRepository.
func (r *tagRepositoryImpl) List(ctx context.Context, filter tag.TagFilter) ([]tag.Tag, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}
	if filter.IsActive != nil {
		whereClause += fmt.Sprintf(" AND is_active = $%d", argIndex)
		args = append(args, *filter.IsActive)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM tags "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, time_minutes, is_active, created_at, updated_at
		FROM tags
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.TimeMinutes, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// Update implements tag.TagRepository.
func (r *tagRepositoryImpl) Update(ctx context.Context, t tag.Tag) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tags
		SET name = $2, time_minutes = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := q.Exec(ctx, query, t.ID, t.Name, t.TimeMinutes, t.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return tag.ErrTagNameExists
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}
	return nil
}

type tagAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewTagAssignmentRepository(db *database.DB) tag.AssignmentRepository {
	return &tagAssignmentRepositoryImpl{db: db}
}

// Assign implements tag.AssignmentRepository.
func (r *tagAssignmentRepositoryImpl) Assign(ctx context.Context, employeeID, tagID string) (tag.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO employee_tags (employee_id, tag_id, assigned_at)
			VALUES ($1, $2, NOW())
			RETURNING employee_id, tag_id, assigned_at
		)
		SELECT i.employee_id, i.tag_id, i.assigned_at, t.name, t.time_minutes, t.is_active
		FROM inserted i
		JOIN tags t ON t.id = i.tag_id
	`
	var a tag.Assignment
	err := q.QueryRow(ctx, query, employeeID, tagID).Scan(
		&a.EmployeeID, &a.TagID, &a.AssignedAt, &a.TagName, &a.TimeMinutes, &a.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return tag.Assignment{}, tag.ErrAlreadyAssigned
		}
		return tag.Assignment{}, fmt.Errorf("failed to assign tag: %w", err)
	}
	return a, nil
}

// Unassign implements tag.AssignmentRepository.
func (r *tagAssignmentRepositoryImpl) Unassign(ctx context.Context, employeeID, tagID string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `DELETE FROM employee_tags WHERE employee_id = $1 AND tag_id = $2`, employeeID, tagID)
	if err != nil {
		return fmt.Errorf("failed to unassign tag: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return tag.ErrAssignmentNotFound
	}
	return nil
}

// ListByEmployee implements tag.AssignmentRepository.
func (r *tagAssignmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]tag.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT et.employee_id, et.tag_id, et.assigned_at, t.name, t.time_minutes, t.is_active
		FROM employee_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.employee_id = $1
		ORDER BY t.name ASC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tag assignments: %w", err)
	}
	defer rows.Close()

	var assignments []tag.Assignment
	for rows.Next() {
		var a tag.Assignment
		if err := rows.Scan(&a.EmployeeID, &a.TagID, &a.AssignedAt, &a.TagName, &a.TimeMinutes, &a.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan tag assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
