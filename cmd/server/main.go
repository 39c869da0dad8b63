package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	_ "github.com/lib/pq"

	"datepoll/config"
	_ "datepoll/docs"
	deliveryhttp "datepoll/internal/delivery/http"
	"datepoll/internal/delivery/http/controllers"
	"datepoll/internal/delivery/http/middleware"
	"datepoll/internal/repository/postgres"
	"datepoll/internal/services"
)

// @title Datepoll API
// @version 1.0
// @description Scheduling poll service: organizers propose candidate dates, invitees submit availability, the service aggregates per-date support.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	responseRepo := postgres.NewResponseRepository(db)

	eventService := services.NewEventService(eventRepo, responseRepo, cfg.RequestTimeout)
	cleanupService := services.NewCleanupService(eventRepo, responseRepo, cfg.RetentionWindow(), logger)

	eventController := controllers.NewEventController(logger, eventService)
	responseController := controllers.NewResponseController(logger, eventService)

	mux := deliveryhttp.NewRouter(eventController, responseController)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	// Deletes events whose last candidate date is past the retention window.
	// SkipIfStillRunning keeps a slow sweep from piling up behind itself.
	sweeper := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := sweeper.AddFunc(cfg.CleanupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		deleted, err := cleanupService.CleanupExpiredEvents(ctx)
		if err != nil {
			logger.Error("cleanup run failed", "err", err)
			return
		}
		if deleted > 0 {
			logger.Info("cleanup run finished", "deleted", deleted)
		}
	}); err != nil {
		logger.Error("invalid cleanup schedule", "schedule", cfg.CleanupSchedule, "err", err)
		os.Exit(1)
	}
	sweeper.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	<-sweeper.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
