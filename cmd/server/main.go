package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/celyn/geirfa/internal/api"
	"github.com/celyn/geirfa/internal/config"
	"github.com/celyn/geirfa/internal/db"
	"github.com/celyn/geirfa/internal/jobs"
	"github.com/celyn/geirfa/internal/learning"
	"github.com/celyn/geirfa/internal/logger"
	"github.com/celyn/geirfa/internal/repository/sqlite"
	"github.com/celyn/geirfa/internal/services"
	"github.com/celyn/geirfa/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Geirfa Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("max_points=%d", cfg.MaxPoints)
	log.Debug("points_per_correct=%d", cfg.PointsPerCorrect)
	log.Debug("quiz_interval=%d", cfg.QuizInterval)
	log.Debug("quiz_size=%d", cfg.QuizSize)
	log.Debug("min_viewed_for_quiz=%d", cfg.MinViewedForQuiz)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	settings := learning.DefaultSettings()
	settings.MaxPoints = cfg.MaxPoints
	settings.PointsPerCorrect = cfg.PointsPerCorrect
	settings.QuizInterval = cfg.QuizInterval
	settings.QuizSize = cfg.QuizSize
	settings.MinViewedForQuiz = cfg.MinViewedForQuiz

	// Repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB, settings.MaxPoints)

	// Background import
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	queue := jobs.NewWorkerQueue(importPool, cardRepo)

	// Services
	userService := services.NewUserService(userRepo)
	cardService := services.NewCardService(cardRepo)
	sessionService := services.NewSessionService(cardRepo, progressRepo, settings)
	statsService := services.NewStatsService(cardRepo, progressRepo, settings)
	importService := services.NewImportService(queue)

	srv := api.NewServer(database, userService, cardService, sessionService, statsService, importService)

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	cancel()
	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("Geirfa Server Stopped")
	log.Info("===========================================")
}
