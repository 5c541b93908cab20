// Package app wires repositories, services and background jobs from the
// configuration. Both the API server and the CLI start from here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/config"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/flowace"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/notification"
	penaltyService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/penalty"
	tagService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/tag"
	warningService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/warning"
	worklogService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/worklog"
)

type App struct {
	Config  *config.Config
	DB      *database.DB
	JWT     *jwt.JWTService
	Hub     *sse.Hub
	Storage *storage.LocalStorage

	Auth          *authService.AuthServiceImpl
	Employees     *employeeService.EmployeeServiceImpl
	Attendance    *attendanceService.AttendanceServiceImpl
	Reconciler    *attendanceService.ReconcilerImpl
	Leave         *leaveService.LeaveServiceImpl
	WorkLog       *worklogService.WorkLogServiceImpl
	ActivitySync  *worklogService.ActivitySyncServiceImpl
	Tags          *tagService.TagServiceImpl
	Warnings      *warningService.WarningServiceImpl
	Penalties     *penaltyService.PenaltyServiceImpl
	Notifications notification.Service
	Jobs          *cron.AttendanceJobs
}

// ParseLogLevel maps LOG_LEVEL onto slog; unknown values fall back to info.
func ParseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SetupLogger installs the default JSON logger.
func SetupLogger(cfg *config.Config) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLogLevel(cfg.App.LogLevel),
	})).With(slog.String("env", cfg.App.Env))
	slog.SetDefault(logger)
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	accessExpiration, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}

	workDays, err := cfg.Reconcile.Weekdays()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("invalid RECONCILE_WORK_DAYS: %w", err)
	}

	loc := cfg.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	tagRepo := postgresql.NewTagRepository(db)
	tagAssignmentRepo := postgresql.NewTagAssignmentRepository(db)
	workLogRepo := postgresql.NewWorkLogRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	warningRepo := postgresql.NewWarningRepository(db)
	penaltyRepo := postgresql.NewPenaltyRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	a := &App{
		Config:  cfg,
		DB:      db,
		JWT:     jwt.NewJWTService(cfg.JWT.Secret, accessExpiration),
		Hub:     sse.NewHub(),
		Storage: fileStorage,
	}

	a.Notifications = notificationService.NewNotificationService(notificationRepo, a.Hub, notificationService.Config{})
	a.Warnings = warningService.NewWarningService(warningRepo, a.Notifications)
	a.Penalties = penaltyService.NewPenaltyService(penaltyRepo, a.Notifications)

	// the client stays a nil interface when the monitor is not configured
	var activityClient flowace.Client
	if cfg.Flowace.Enabled() {
		activityClient = flowace.NewClient(ctx, flowace.Config{
			BaseURL:      cfg.Flowace.BaseURL,
			TokenURL:     cfg.Flowace.TokenURL,
			ClientID:     cfg.Flowace.ClientID,
			ClientSecret: cfg.Flowace.ClientSecret,
			Scopes:       cfg.Flowace.Scopes,
		})
	}
	a.ActivitySync = worklogService.NewActivitySyncService(activityClient, employeeRepo, activityRepo)
	evidence := worklogService.NewEvidenceService(workLogRepo, activityRepo)

	a.Reconciler = attendanceService.NewReconciler(
		db,
		attendanceRepo,
		leaveRequestRepo,
		evidence,
		employeeRepo,
		a.Warnings,
		a.Penalties,
		a.Notifications,
		cfg.Reconcile.Concurrency,
	)

	a.Auth = authService.NewAuthService(a.JWT, employeeRepo)
	a.Employees = employeeService.NewEmployeeService(employeeRepo)
	a.Attendance = attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, a.Reconciler, fileStorage, loc)
	a.Leave = leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, a.Notifications, a.Reconciler, loc)
	a.WorkLog = worklogService.NewWorkLogService(db, workLogRepo, tagAssignmentRepo, employeeRepo, a.Notifications, loc)
	a.Tags = tagService.NewTagService(tagRepo, tagAssignmentRepo, employeeRepo)

	var jobSync *worklogService.ActivitySyncServiceImpl
	if activityClient != nil {
		jobSync = a.ActivitySync
	}
	a.Jobs = newAttendanceJobs(a.Reconciler, jobSync, cfg.Reconcile.JobInterval, loc, workDays)

	slog.Info("Application wired",
		"timezone", loc.String(),
		"activity_sync", cfg.Flowace.Enabled(),
		"reconcile_concurrency", cfg.Reconcile.Concurrency)
	return a, nil
}

// newAttendanceJobs keeps a typed-nil sync service from reaching the jobs,
// which skip activity sync only on a nil interface.
func newAttendanceJobs(reconciler *attendanceService.ReconcilerImpl, sync *worklogService.ActivitySyncServiceImpl, interval time.Duration, loc *time.Location, workDays []time.Weekday) *cron.AttendanceJobs {
	if sync == nil {
		return cron.NewAttendanceJobs(reconciler, nil, interval, loc, workDays)
	}
	return cron.NewAttendanceJobs(reconciler, sync, interval, loc, workDays)
}

// Close drains queued notifications before closing the pool.
func (a *App) Close() {
	a.Notifications.Stop()
	a.DB.Close()
}
