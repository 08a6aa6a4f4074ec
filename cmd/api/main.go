package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"jobspring-backend/config"
	v1 "jobspring-backend/internal/delivery/http/v1"
	"jobspring-backend/internal/domain"
	"jobspring-backend/internal/outbox"
	"jobspring-backend/internal/repository/postgres"
	"jobspring-backend/internal/usecase"
	"jobspring-backend/pkg/database"
	"jobspring-backend/pkg/email"
	"jobspring-backend/pkg/logger"
	"jobspring-backend/pkg/redis"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting jobspring backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	membershipRepo := postgres.NewMembershipRepository(dbPool)
	outboxRepo := postgres.NewOutboxRepository(dbPool)
	txManager := postgres.NewTxManager(dbPool)

	// 6. Setup Email Service
	emailService := email.NewService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - HR notification mail will be skipped")
	}

	// 7. Setup UseCases
	validate := validator.New()
	scope := usecase.NewScopeResolver(membershipRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, outboxRepo, scope, txManager, validate)
	applicationUC := usecase.NewApplicationUsecase(
		applicationRepo, jobRepo, userRepo, profileRepo, outboxRepo, scope, txManager)

	// 8. Setup Outbox Worker
	worker := outbox.NewWorker(outboxRepo, outbox.Config{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	}, logger.Log)
	worker.Handle(domain.EventJobDeactivated, outbox.NewInvalidateApplicationsHandler(applicationRepo, logger.Log))
	worker.Handle(domain.EventApplicationSubmitted, outbox.NewApplicationSubmittedHandler(membershipRepo, emailService, cfg.WebBaseURL, logger.Log))

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go worker.Run(workerCtx)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		UserRepo:      userRepo,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Stop accepting requests first, then stop the worker so in-flight
	// events finish their current batch.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	stopWorker()

	logger.Log.Info("Server exiting")
}
