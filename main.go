package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/naiveform/naiveform-backend/config"
	"github.com/naiveform/naiveform-backend/handlers"
	"github.com/naiveform/naiveform-backend/logger"
	"github.com/naiveform/naiveform-backend/router"
	"github.com/naiveform/naiveform-backend/services"
	"github.com/naiveform/naiveform-backend/store/postgres"
)

const version = "1.0.0"

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.RunMigrations(&cfg.Database, "file://db/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := config.NewPgxPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Stores
	formStore := postgres.NewPgFormStore(pool)
	responseStore := postgres.NewPgResponseStore(pool)
	webhookLogStore := postgres.NewPgWebhookLogStore(pool)

	// Webhook dispatch pool + services
	workerPool := services.NewWorkerPool(cfg.WorkerPool)
	workerPool.Start()

	webhookService := services.NewWebhookService(
		formStore, responseStore, webhookLogStore, workerPool,
		time.Duration(cfg.Dispatcher.TimeoutSeconds)*time.Second)
	submissionService := services.NewSubmissionService(formStore, responseStore, webhookService)
	formService := services.NewFormService(formStore)

	// Handlers
	deps := router.Dependencies{
		Config:            cfg,
		SubmissionHandler: handlers.NewSubmissionHandler(submissionService),
		FormHandler:       handlers.NewFormHandler(formService),
		ResponseHandler:   handlers.NewResponseHandler(formService, responseStore, webhookLogStore),
		HealthHandler:     handlers.NewHealthHandler(pool, version),
		Logger:            log,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown failed", "error", err)
	}

	poolCtx, poolCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.WorkerPool.ShutdownTimeoutSeconds)*time.Second)
	defer poolCancel()
	if err := workerPool.Shutdown(poolCtx); err != nil {
		log.Warnw("Worker pool shutdown incomplete", "error", err)
	}

	log.Info("Server stopped")
}
