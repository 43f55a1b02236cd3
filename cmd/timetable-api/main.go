package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-timetable-api/api/swagger"
	"github.com/noah-isme/sma-timetable-api/internal/handler"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	"github.com/noah-isme/sma-timetable-api/internal/router"
	"github.com/noah-isme/sma-timetable-api/internal/service"
	"github.com/noah-isme/sma-timetable-api/pkg/cache"
	"github.com/noah-isme/sma-timetable-api/pkg/config"
	"github.com/noah-isme/sma-timetable-api/pkg/database"
	"github.com/noah-isme/sma-timetable-api/pkg/jobs"
	"github.com/noah-isme/sma-timetable-api/pkg/logger"
)

// @title School Timetable API
// @version 1.0.0
// @description Multi-tenant weekly timetable scheduling: calendars, entries, conflicts, availability, substitutes and swaps.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		migrator, err := database.NewMigrator(db.DB, logr)
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{"postgres": db}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		cacheRepo = repository.NewCacheRepository(client, logr)
		checks["redis"] = cache.Probe{Client: client}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	calendarRepo := repository.NewCalendarConfigRepository(db)
	entryRepo := repository.NewTimetableEntryRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	substituteRepo := repository.NewSubstituteRepository(db)
	swapRepo := repository.NewPeriodSwapRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	sectionRepo := repository.NewClassSectionRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)

	validate := validator.New()

	summaryWorker := service.NewSummaryWorker(entryRepo, cacheSvc, metrics, logr)
	summaryQueue := jobs.NewQueue("schedule-summary", summaryWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Summary.Workers,
		MaxRetries: cfg.Summary.Retries,
		RetryDelay: cfg.Summary.RetryDelay,
		Logger:     logr,
	})
	summaryQueue.Start(ctx)
	defer summaryQueue.Stop()
	summarySvc := service.NewScheduleSummaryService(summaryWorker, cacheSvc, summaryQueue, logr)

	conflictSvc := service.NewConflictService(entryRepo, cacheSvc, metrics, cfg.Cache.ConflictTTL, logr)
	calendarSvc := service.NewCalendarConfigService(calendarRepo, db, validate, logr)
	timetableSvc := service.NewTimetableService(entryRepo, calendarRepo, roomRepo, teacherRepo, subjectRepo, sectionRepo, conflictSvc, summarySvc, metrics, validate, logr)
	availabilitySvc := service.NewAvailabilityService(entryRepo, calendarRepo, teacherRepo, roomRepo, leaveRepo, substituteRepo, logr)
	substituteSvc := service.NewSubstituteService(substituteRepo, entryRepo, teacherRepo, availabilitySvc, metrics, validate, logr)
	swapSvc := service.NewPeriodSwapService(swapRepo, entryRepo, metrics, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	go substituteSvc.RunAutoComplete(ctx, cfg.Substitute.AutoCompleteInterval)

	engine := router.New(cfg, logr, tokenSvc, metrics, router.Handlers{
		Calendar:     handler.NewCalendarHandler(calendarSvc),
		Timetable:    handler.NewTimetableHandler(timetableSvc, conflictSvc, summarySvc),
		Availability: handler.NewAvailabilityHandler(availabilitySvc),
		Substitute:   handler.NewSubstituteHandler(substituteSvc),
		Swap:         handler.NewSwapHandler(swapSvc),
		Room:         handler.NewRoomHandler(roomSvc),
		Metrics:      handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
