package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) worklog.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Upsert implements worklog.ActivityRepository.
func (r *activityRepositoryImpl) Upsert(ctx context.Context, rec worklog.ActivityRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_records (employee_id, date, source, active_minutes, synced_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date, source) DO UPDATE SET
			active_minutes = EXCLUDED.active_minutes,
			synced_at = EXCLUDED.synced_at
	`
	if _, err := q.Exec(ctx, query, rec.EmployeeID, rec.Date, rec.Source, rec.ActiveMinutes, rec.SyncedAt); err != nil {
		return fmt.Errorf("failed to save activity record: %w", err)
	}
	return nil
}

// GetMinutes implements worklog.ActivityRepository.
func (r *activityRepositoryImpl) GetMinutes(ctx context.Context, employeeID string, date time.Time, source string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var minutes int
	err := q.QueryRow(ctx, `
		SELECT active_minutes FROM activity_records
		WHERE employee_id = $1 AND date = $2 AND source = $3
	`, employeeID, date, source).Scan(&minutes)
	if err != nil {
		if isNoRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get activity minutes: %w", err)
	}
	return minutes, nil
}
