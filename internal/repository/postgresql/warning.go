package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/warning"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type warningRepositoryImpl struct {
	db *database.DB
}

func NewWarningRepository(db *database.DB) warning.WarningRepository {
	return &warningRepositoryImpl{db: db}
}

const warningColumns = `
	w.id, w.employee_id, w.date, w.reason, w.source, w.issued_by,
	w.acknowledged_at, w.created_at, e.full_name`

func scanWarning(row pgx.Row) (warning.Warning, error) {
	var w warning.Warning
	err := row.Scan(
		&w.ID, &w.EmployeeID, &w.Date, &w.Reason, &w.Source, &w.IssuedBy,
		&w.AcknowledgedAt, &w.CreatedAt, &w.EmployeeName,
	)
	return w, err
}

// Create implements warning.WarningRepository.
func (r *warningRepositoryImpl) Create(ctx context.Context, w warning.Warning) (warning.Warning, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO warnings (employee_id, date, reason, source, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query, w.EmployeeID, w.Date, w.Reason, w.Source, w.IssuedBy).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return warning.Warning{}, warning.ErrWarningExists
		}
		return warning.Warning{}, fmt.Errorf("failed to create warning: %w", err)
	}
	return w, nil
}

// CreateIfAbsent implements warning.WarningRepository.
func (r *warningRepositoryImpl) CreateIfAbsent(ctx context.Context, w warning.Warning) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO warnings (employee_id, date, reason, source, issued_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id, date, source) DO NOTHING
	`
	cmd, err := q.Exec(ctx, query, w.EmployeeID, w.Date, w.Reason, w.Source, w.IssuedBy)
	if err != nil {
		return false, fmt.Errorf("failed to create warning: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// GetByID implements warning.WarningRepository.
func (r *warningRepositoryImpl) GetByID(ctx context.Context, id string) (warning.Warning, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + warningColumns + `
		FROM warnings w
		JOIN employees e ON e.id = w.employee_id
		WHERE w.id = $1`

	w, err := scanWarning(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return warning.Warning{}, warning.ErrWarningNotFound
		}
		return warning.Warning{}, fmt.Errorf("failed to get warning: %w", err)
	}
	return w, nil
}

// List implements warning.WarningRepository.
func (r *warningRepositoryImpl) List(ctx context.Context, filter warning.WarningFilter) ([]warning.Warning, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND w.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Source != nil {
		whereClause += fmt.Sprintf(" AND w.source = $%d", argIndex)
		args = append(args, *filter.Source)
		argIndex++
	}
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND w.date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND w.date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}
	if filter.Acknowledged != nil {
		if *filter.Acknowledged {
			whereClause += " AND w.acknowledged_at IS NOT NULL"
		} else {
			whereClause += " AND w.acknowledged_at IS NULL"
		}
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM warnings w ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count warnings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM warnings w
		JOIN employees e ON e.id = w.employee_id
		%s
		ORDER BY w.date DESC, w.created_at DESC
		LIMIT $%d OFFSET $%d
	`, warningColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []warning.Warning
	for rows.Next() {
		w, err := scanWarning(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan warning: %w", err)
		}
		warnings = append(warnings, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return warnings, total, nil
}

// Acknowledge implements warning.WarningRepository.
func (r *warningRepositoryImpl) Acknowledge(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `
		UPDATE warnings SET acknowledged_at = NOW()
		WHERE id = $1 AND acknowledged_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to acknowledge warning: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return warning.ErrAlreadyAcknowledged
	}
	return nil
}

// Delete implements warning.WarningRepository.
func (r *warningRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	cmd, err := q.Exec(ctx, `DELETE FROM warnings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete warning: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return warning.ErrWarningNotFound
	}
	return nil
}
