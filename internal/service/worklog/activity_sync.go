package worklog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/flowace"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

// FlowaceUserResolver maps monitor accounts onto employees.
type FlowaceUserResolver interface {
	GetByFlowaceUserID(ctx context.Context, flowaceUserID string) (employee.Employee, error)
}

type ActivitySyncServiceImpl struct {
	client     flowace.Client
	employees  FlowaceUserResolver
	activities worklog.ActivityRepository
	now        func() time.Time
}

// NewActivitySyncService returns a sync service; a nil client disables it.
func NewActivitySyncService(client flowace.Client, employees FlowaceUserResolver, activities worklog.ActivityRepository) *ActivitySyncServiceImpl {
	return &ActivitySyncServiceImpl{
		client:     client,
		employees:  employees,
		activities: activities,
		now:        time.Now,
	}
}

// SyncDate implements worklog.ActivitySyncService.
func (s *ActivitySyncServiceImpl) SyncDate(ctx context.Context, date time.Time) (worklog.SyncSummary, error) {
	if s.client == nil {
		return worklog.SyncSummary{}, worklog.ErrActivityDisabled
	}
	date = utils.DateOf(date, time.UTC)

	activities, err := s.client.DailyActivity(ctx, date)
	if err != nil {
		return worklog.SyncSummary{}, fmt.Errorf("failed to fetch flowace activity: %w", err)
	}

	summary := worklog.SyncSummary{
		Date:      utils.FormatDate(date),
		Fetched:   len(activities),
		Unmatched: []string{},
	}
	for _, a := range activities {
		emp, err := s.employees.GetByFlowaceUserID(ctx, a.UserID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				summary.Unmatched = append(summary.Unmatched, a.UserID)
				continue
			}
			return summary, err
		}

		err = s.activities.Upsert(ctx, worklog.ActivityRecord{
			EmployeeID:    emp.ID,
			Date:          date,
			Source:        worklog.SourceFlowace,
			ActiveMinutes: max(a.ActiveMinutes, 0),
			SyncedAt:      s.now().UTC(),
		})
		if err != nil {
			return summary, fmt.Errorf("failed to store activity for %s: %w", emp.ID, err)
		}
		summary.Stored++
	}

	slog.Info("Flowace activity synced",
		"date", summary.Date,
		"fetched", summary.Fetched,
		"stored", summary.Stored,
		"unmatched", len(summary.Unmatched),
	)
	return summary, nil
}
