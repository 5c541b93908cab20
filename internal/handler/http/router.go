package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/perfmon"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	WorkLog      WorkLogHandler
	Tag          TagHandler
	Warning      WarningHandler
	Penalty      PenaltyHandler
	Notification NotificationHandler
	Metrics      MetricsHandler
}

type RouterOptions struct {
	Env         string
	Version     string
	LogLevel    slog.Level
	CORSOrigins []string
	// StorageDir is served under /files for generated reports.
	StorageDir string
}

func NewRouter(JWTService jwt.Service, monitor *perfmon.Monitor, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worktrack"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(monitor.Middleware)

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.LoginWithEmployeeCode)

		// EventSource authenticates with a short-lived query token
		r.Get("/sse/notifications", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.Post("/sse-token", h.Auth.SSEToken)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/my", h.Attendance.GetMyAttendance)
				r.Get("/{id}", h.Attendance.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.List)
					r.Put("/{id}", h.Attendance.Update)
					r.Post("/import", h.Attendance.Import)
					r.Get("/export", h.Attendance.Export)
					r.Post("/reconcile", h.Attendance.Reconcile)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", h.Leave.Create)
				r.Get("/my", h.Leave.ListMine)
				r.Get("/{id}", h.Leave.Get)
				r.Delete("/{id}", h.Leave.Cancel)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Leave.List)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/deny", h.Leave.Deny)
				})
			})

			r.Route("/worklogs", func(r chi.Router) {
				r.Get("/day", h.WorkLog.GetDay)
				r.Put("/day", h.WorkLog.SaveEntries)
				r.Post("/day/submit", h.WorkLog.SubmitDay)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/day/unlock", h.WorkLog.UnlockDay)
					r.Post("/activity/sync", h.WorkLog.SyncActivity)
				})
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/assigned", h.Tag.ListAssigned)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Tag.List)
					r.Post("/", h.Tag.Create)
					r.Get("/{id}", h.Tag.Get)
					r.Put("/{id}", h.Tag.Update)
					r.Delete("/{id}", h.Tag.Delete)
					r.Post("/{id}/employees/{employeeID}", h.Tag.Assign)
					r.Delete("/{id}/employees/{employeeID}", h.Tag.Unassign)
				})
			})

			r.Route("/warnings", func(r chi.Router) {
				r.Get("/my", h.Warning.ListMine)
				r.Post("/{id}/acknowledge", h.Warning.Acknowledge)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Warning.List)
					r.Post("/", h.Warning.Create)
					r.Delete("/{id}", h.Warning.Delete)
				})
			})

			r.Route("/penalties", func(r chi.Router) {
				r.Get("/my", h.Penalty.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Penalty.List)
					r.Post("/", h.Penalty.Create)
					r.Post("/{id}/waive", h.Penalty.Waive)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
				r.Get("/preferences", h.Notification.GetPreferences)
				r.Put("/preferences", h.Notification.UpdatePreference)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Post("/{id}/deactivate", h.Employee.Deactivate)
				})

				r.Get("/metrics", h.Metrics.Get)
				r.Delete("/metrics", h.Metrics.Reset)
			})
		})
	})

	// Generated reports; same auth as the export endpoint
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))
		r.Use(middleware.AdminOnly)
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.StorageDir))))
	})

	return r
}
