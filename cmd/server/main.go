package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/tilmock/cefr-backend/internal/archive"
	"github.com/tilmock/cefr-backend/internal/config"
	"github.com/tilmock/cefr-backend/internal/database"
	"github.com/tilmock/cefr-backend/internal/handler"
	"github.com/tilmock/cefr-backend/internal/logger"
	"github.com/tilmock/cefr-backend/internal/repository"
	"github.com/tilmock/cefr-backend/internal/router"
	"github.com/tilmock/cefr-backend/internal/service"
	"github.com/tilmock/cefr-backend/internal/validator"
	"github.com/tilmock/cefr-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting TilMock Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewDeviceSessionRepository(pool)
	readingRepo := repository.NewReadingRepository(pool)
	listeningRepo := repository.NewListeningRepository(pool)
	writingRepo := repository.NewWritingRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(cfg, userRepo, notificationRepo, authService, log)
	sessionService := service.NewDeviceSessionService(cfg, sessionRepo, log)
	archiveQueue := archive.NewRedisQueue(rdb, config.WorkerKey.ArchiveDocumentsQueue)
	scoringService := service.NewScoringService(cfg, readingRepo, listeningRepo, rdb, archiveQueue, log)
	writingService := service.NewWritingService(writingRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService, sessionService),
		User:         handler.NewUserHandler(userService),
		Session:      handler.NewSessionHandler(sessionService),
		Reading:      handler.NewReadingHandler(readingRepo, scoringService, userService),
		Listening:    handler.NewListeningHandler(listeningRepo, scoringService, userService),
		Writing:      handler.NewWritingHandler(writingService),
		Notification: handler.NewNotificationHandler(notificationService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	telegram := archive.NewTelegramClient(cfg.TelegramBotToken)
	archiveWorker := worker.NewArchiveWorker(rdb, telegram, log)
	go archiveWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, sessionService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the archive queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
