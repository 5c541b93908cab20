package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
)

type workLogRepositoryImpl struct {
	db *database.DB
}

func NewWorkLogRepository(db *database.DB) worklog.EntryRepository {
	return &workLogRepositoryImpl{db: db}
}

// ListDay implements worklog.EntryRepository.
func (r *workLogRepositoryImpl) ListDay(ctx context.Context, employeeID string, date time.Time) ([]worklog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.employee_id, w.tag_id, w.date, w.count, w.minutes,
			w.submitted, w.submitted_at, w.created_at, w.updated_at, t.name
		FROM work_log_entries w
		JOIN tags t ON t.id = w.tag_id
		WHERE w.employee_id = $1 AND w.date = $2
		ORDER BY t.name ASC
	`
	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query work log entries: %w", err)
	}
	defer rows.Close()

	var entries []worklog.Entry
	for rows.Next() {
		var e worklog.Entry
		err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.TagID, &e.Date, &e.Count, &e.Minutes,
			&e.Submitted, &e.SubmittedAt, &e.CreatedAt, &e.UpdatedAt, &e.TagName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Upsert implements worklog.EntryRepository.
func (r *workLogRepositoryImpl) Upsert(ctx context.Context, e worklog.Entry) (worklog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_log_entries (employee_id, tag_id, date, count, minutes, submitted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		ON CONFLICT (employee_id, tag_id, date) DO UPDATE SET
			count = EXCLUDED.count,
			minutes = EXCLUDED.minutes,
			updated_at = NOW()
		RETURNING id, submitted, submitted_at, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, e.EmployeeID, e.TagID, e.Date, e.Count, e.Minutes).
		Scan(&e.ID, &e.Submitted, &e.SubmittedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("failed to save work log entry: %w", err)
	}
	return e, nil
}

// IsDayLocked implements worklog.EntryRepository.
func (r *workLogRepositoryImpl) IsDayLocked(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var locked bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM work_log_entries
			WHERE employee_id = $1 AND date = $2 AND submitted
		)
	`, employeeID, date).Scan(&locked)
	if err != nil {
		return false, fmt.Errorf("failed to check work log lock: %w", err)
	}
	return locked, nil
}

// SetSubmitted implements worklog.EntryRepository.
func (r *workLogRepositoryImpl) SetSubmitted(ctx context.Context, employeeID string, date time.Time, submitted bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_log_entries
		SET submitted = $3,
			submitted_at = CASE WHEN $3 THEN NOW() ELSE NULL END,
			updated_at = NOW()
		WHERE employee_id = $1 AND date = $2
	`
	cmd, err := q.Exec(ctx, query, employeeID, date, submitted)
	if err != nil {
		return 0, fmt.Errorf("failed to update work log submission: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// SumMinutes implements worklog.EntryRepository.
func (r *workLogRepositoryImpl) SumMinutes(ctx context.Context, employeeID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(minutes), 0)::int
		FROM work_log_entries
		WHERE employee_id = $1 AND date = $2
	`, employeeID, date).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum work log minutes: %w", err)
	}
	return total, nil
}
