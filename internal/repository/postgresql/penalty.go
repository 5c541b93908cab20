package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/penalty"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type penaltyRepositoryImpl struct {
	db *database.DB
}

func NewPenaltyRepository(db *database.DB) penalty.PenaltyRepository {
	return &penaltyRepositoryImpl{db: db}
}

const penaltyColumns = `
	p.id, p.employee_id, p.date, p.reason, p.source, p.status, p.issued_by,
	p.waived_by, p.waived_at, p.waive_reason, p.created_at, p.updated_at, e.full_name`

func scanPenalty(row pgx.Row) (penalty.Penalty, error) {
	var p penalty.Penalty
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Date, &p.Reason, &p.Source, &p.Status, &p.IssuedBy,
		&p.WaivedBy, &p.WaivedAt, &p.WaiveReason, &p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
	)
	return p, err
}

// Create implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) Create(ctx context.Context, p penalty.Penalty) (penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalties (employee_id, date, reason, source, status, issued_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, p.EmployeeID, p.Date, p.Reason, p.Source, p.Status, p.IssuedBy).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return penalty.Penalty{}, penalty.ErrPenaltyExists
		}
		return penalty.Penalty{}, fmt.Errorf("failed to create penalty: %w", err)
	}
	return p, nil
}

// CreateIfAbsent implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) CreateIfAbsent(ctx context.Context, p penalty.Penalty) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO penalties (employee_id, date, reason, source, status, issued_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (employee_id, date, source) DO NOTHING
	`
	cmd, err := q.Exec(ctx, query, p.EmployeeID, p.Date, p.Reason, p.Source, p.Status, p.IssuedBy)
	if err != nil {
		return false, fmt.Errorf("failed to create penalty: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// GetByID implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) GetByID(ctx context.Context, id string) (penalty.Penalty, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + penaltyColumns + `
		FROM penalties p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1`

	p, err := scanPenalty(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return penalty.Penalty{}, penalty.ErrPenaltyNotFound
		}
		return penalty.Penalty{}, fmt.Errorf("failed to get penalty: %w", err)
	}
	return p, nil
}

// List implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) List(ctx context.Context, filter penalty.PenaltyFilter) ([]penalty.Penalty, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND p.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND p.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND p.date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND p.date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM penalties p `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count penalties: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM penalties p
		JOIN employees e ON e.id = p.employee_id
		%s
		ORDER BY p.date DESC, p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, penaltyColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query penalties: %w", err)
	}
	defer rows.Close()

	var penalties []penalty.Penalty
	for rows.Next() {
		p, err := scanPenalty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan penalty: %w", err)
		}
		penalties = append(penalties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return penalties, total, nil
}

// Waive implements penalty.PenaltyRepository.
func (r *penaltyRepositoryImpl) Waive(ctx context.Context, p penalty.Penalty) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE penalties
		SET status = $2, waived_by = $3, waived_at = NOW(), waive_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`
	cmd, err := q.Exec(ctx, query, p.ID, penalty.StatusWaived, p.WaivedBy, p.WaiveReason, penalty.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to waive penalty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return penalty.ErrPenaltyAlreadyWaived
	}
	return nil
}
