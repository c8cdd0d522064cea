package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/config"
	appHTTP "github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/cron"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/database"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/jwt"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/repository/postgresql"
	contractService "github.com/cataratas-rh/cataratasrh-backend-go/internal/service/contract"
	healthRecordService "github.com/cataratas-rh/cataratasrh-backend-go/internal/service/healthrecord"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/service/leave"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.DefaultPoolOptions())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	holidays := calendar.DefaultHolidayTable()
	if cfg.Calendar.HolidaysFile != "" {
		holidays, err = calendar.LoadHolidayTable(cfg.Calendar.HolidaysFile)
		if err != nil {
			return err
		}
	}
	cal := calendar.New(holidays)
	slog.Info("Holiday table loaded", "version", holidays.Version, "holidays", len(holidays.All()))

	contractRepo := postgresql.NewContractRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	healthRecordRepo := postgresql.NewHealthRecordRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	contractSvc := contractService.NewContractService(contractRepo, loc)
	healthRecordSvc := healthRecordService.NewHealthRecordService(healthRecordRepo, loc)
	requestSvc := leave.NewRequestService(txManager, requestRepo, contractRepo, cal)

	var scheduler *cron.Scheduler
	if cfg.Cron.Enabled {
		scheduler = cron.NewScheduler()
		cron.NewLifecycleJobs(contractSvc, healthRecordSvc, loc).RegisterJobs(scheduler)
		scheduler.Start()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: []string{cfg.App.FrontendURL},
		},
		JWTService,
		appHTTP.NewCalendarHandler(cal),
		appHTTP.NewContractHandler(contractSvc, requestSvc),
		appHTTP.NewRequestHandler(requestSvc),
		appHTTP.NewHealthRecordHandler(healthRecordSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
