package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/config"
	appHTTP "github.com/timegrid-hq/attendance-backend-go/internal/handler/http"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/cron"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/database"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/oauth"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/sse"
	"github.com/timegrid-hq/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/timegrid-hq/attendance-backend-go/internal/service/attendance"
	authService "github.com/timegrid-hq/attendance-backend-go/internal/service/auth"
	leaveService "github.com/timegrid-hq/attendance-backend-go/internal/service/leave"
	notificationService "github.com/timegrid-hq/attendance-backend-go/internal/service/notification"
	officeService "github.com/timegrid-hq/attendance-backend-go/internal/service/office"
	remoteWorkService "github.com/timegrid-hq/attendance-backend-go/internal/service/remotework"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		os.Exit(1)
	}

	lateCutoff, err := attendanceService.ParseCutoff(cfg.Attendance.LateCutoff)
	if err != nil {
		fmt.Println("Error parsing late cutoff:", err)
		os.Exit(1)
	}
	autoCheckoutCutoff, err := attendanceService.ParseCutoff(cfg.Attendance.AutoCheckoutCutoff)
	if err != nil {
		fmt.Println("Error parsing auto checkout cutoff:", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	remoteWorkRepo := postgresql.NewRemoteWorkLogRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	defer notifService.Stop()

	officeSvc := officeService.NewOfficeService(officeRepo, cfg.Attendance.GeofenceCacheTTL)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		remoteWorkRepo,
		leaveRepo,
		officeSvc,
		holidayRepo,
		notifService,
		loc,
		lateCutoff,
		autoCheckoutCutoff,
	)
	remoteWorkSvc := remoteWorkService.NewRemoteWorkService(remoteWorkRepo, attendanceRepo, notifService, db, loc)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, notifService, loc)
	authSvc := authService.NewAuthService(jwtService, userRepo, jwtRepo, googleService, db)

	scheduler := cron.NewScheduler()
	jobs := cron.NewAttendanceJobs(attendanceSvc, remoteWorkSvc)
	jobs.Register(scheduler, cfg.Attendance.CronTickInterval)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, loc)
	remoteWorkHandler := appHTTP.NewRemoteWorkHandler(remoteWorkSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	officeHandler := appHTTP.NewOfficeHandler(officeSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidayRepo, loc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, jwtService)
	jobsHandler := appHTTP.NewJobsHandler(attendanceSvc, remoteWorkSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			AppEnv:         cfg.App.Env,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		remoteWorkHandler,
		leaveHandler,
		officeHandler,
		holidayHandler,
		notificationHandler,
		jobsHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
