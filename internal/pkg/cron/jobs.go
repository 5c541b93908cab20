package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
)

type AttendanceJobs struct {
	reconciler attendance.Reconciler
	// activitySync is nil when the activity monitor is not configured
	activitySync worklog.ActivitySyncService
	interval     time.Duration
	loc          *time.Location
	workDays     map[time.Weekday]bool
	now          func() time.Time
}

func NewAttendanceJobs(
	reconciler attendance.Reconciler,
	activitySync worklog.ActivitySyncService,
	interval time.Duration,
	loc *time.Location,
	workDays []time.Weekday,
) *AttendanceJobs {
	days := make(map[time.Weekday]bool, len(workDays))
	for _, d := range workDays {
		days[d] = true
	}
	return &AttendanceJobs{
		reconciler:   reconciler,
		activitySync: activitySync,
		interval:     interval,
		loc:          loc,
		workDays:     days,
		now:          time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	if j.activitySync != nil {
		scheduler.AddJob("sync_flowace_activity", j.interval, j.SyncActivity)
	}
	scheduler.AddJob("reconcile_previous_day", j.interval, j.ReconcilePreviousDay)
}

// ReconcilePreviousDay reconciles yesterday for every active employee. It
// only acts during local hour 0 and skips non-working days; re-runs within
// the hour are idempotent.
func (j *AttendanceJobs) ReconcilePreviousDay(ctx context.Context) error {
	nowLocal := j.now().In(j.loc)
	if nowLocal.Hour() != 0 {
		return nil
	}

	yesterday := utils.DateOf(nowLocal.AddDate(0, 0, -1), j.loc)
	if !j.workDays[yesterday.Weekday()] {
		slog.Info("Cron: Skipping reconcile for non-working day",
			"date", utils.FormatDate(yesterday),
			"weekday", yesterday.Weekday().String())
		return nil
	}
	slog.Info("Cron: Starting reconcile previous day job", "date", utils.FormatDate(yesterday))

	summary, err := j.reconciler.ReconcileDate(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to reconcile %s: %w", utils.FormatDate(yesterday), err)
	}

	slog.Info("Cron: Reconciled previous day",
		"date", summary.Date,
		"total", summary.Total,
		"reconciled", summary.Reconciled,
		"exceptions", summary.Exceptions,
		"warnings", summary.Warnings,
		"penalties", summary.Penalties,
		"unmodeled", summary.Unmodeled,
		"failures", len(summary.Failures))
	return nil
}

// SyncActivity pulls monitor activity for today and yesterday; yesterday is
// included so late uploads still land before the midnight reconcile.
func (j *AttendanceJobs) SyncActivity(ctx context.Context) error {
	today := utils.DateOf(j.now(), j.loc)

	for _, date := range []time.Time{today.AddDate(0, 0, -1), today} {
		summary, err := j.activitySync.SyncDate(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to sync activity for %s: %w", utils.FormatDate(date), err)
		}
		slog.Info("Cron: Synced activity",
			"date", summary.Date,
			"fetched", summary.Fetched,
			"stored", summary.Stored,
			"unmatched", len(summary.Unmatched))
	}
	return nil
}
