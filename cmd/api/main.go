package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/app"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/worktrack-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/perfmon"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	app.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	monitor := perfmon.NewMonitor()

	router := appHTTP.NewRouter(a.JWT, monitor, appHTTP.RouterOptions{
		Env:         cfg.App.Env,
		Version:     version,
		LogLevel:    app.ParseLogLevel(cfg.App.LogLevel),
		CORSOrigins: cfg.App.CORSOrigins,
		StorageDir:  a.Storage.Dir(),
	}, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(a.Auth),
		Employee:     appHTTP.NewEmployeeHandler(a.Employees),
		Attendance:   appHTTP.NewAttendanceHandler(a.Attendance, a.Reconciler, cfg.Location()),
		Leave:        appHTTP.NewLeaveHandler(a.Leave),
		WorkLog:      appHTTP.NewWorkLogHandler(a.WorkLog, a.ActivitySync),
		Tag:          appHTTP.NewTagHandler(a.Tags),
		Warning:      appHTTP.NewWarningHandler(a.Warnings),
		Penalty:      appHTTP.NewPenaltyHandler(a.Penalties),
		Notification: appHTTP.NewNotificationHandler(a.Notifications, a.JWT),
		Metrics:      appHTTP.NewMetricsHandler(monitor),
	})

	scheduler := cron.NewScheduler()
	a.Jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts end on shutdown so SSE streams return
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
