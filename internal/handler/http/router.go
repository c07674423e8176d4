package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timegrid-hq/attendance-backend-go/internal/handler/http/middleware"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	AppEnv         string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	remoteWorkHandler RemoteWorkHandler,
	leaveHandler LeaveHandler,
	officeHandler OfficeHandler,
	holidayHandler HolidayHandler,
	notificationHandler NotificationHandler,
	jobsHandler JobsHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Get("/login/oauth/google", authHandler.LoginWithGoogle)
			r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// SSE authenticates with its own short-lived token, not the verifier.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/today", attendanceHandler.GetTodayStatus)
				r.Get("/status", attendanceHandler.GetDayStatus)
				r.Get("/my", attendanceHandler.ListMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/day-status", attendanceHandler.GetUserDayStatus)
				})
			})

			r.Route("/remote-work", func(r chi.Router) {
				r.Post("/", remoteWorkHandler.Submit)
				r.Get("/my", remoteWorkHandler.ListMyLogs)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending", remoteWorkHandler.ListPending)
					r.Get("/stats", remoteWorkHandler.GetPendingStats)
					r.Post("/{logID}/validate", remoteWorkHandler.Validate)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/my", leaveHandler.ListMyLeave)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending", leaveHandler.ListPending)
					r.Post("/{leaveID}/decide", leaveHandler.Decide)
				})
			})

			r.Route("/office", func(r chi.Router) {
				r.Get("/", officeHandler.GetActive)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", officeHandler.Upsert)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.ListByYear)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", holidayHandler.Create)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read", notificationHandler.MarkAsRead)
				r.Post("/read-all", notificationHandler.MarkAllAsRead)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})

			// Operator-invoked batch triggers
			r.Route("/admin/jobs", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/auto-checkout", jobsHandler.RunAutoCheckout)
				r.Post("/wfh-expiry-sweep", jobsHandler.RunExpirySweep)
			})
		})
	})

	return r
}
