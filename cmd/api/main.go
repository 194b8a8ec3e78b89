package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-applicant-intake/config"
	v1 "go-applicant-intake/internal/delivery/http/v1"
	"go-applicant-intake/internal/delivery/http/middleware"
	"go-applicant-intake/internal/domain"
	"go-applicant-intake/internal/notify"
	"go-applicant-intake/internal/repository/postgres"
	"go-applicant-intake/internal/usecase"
	"go-applicant-intake/pkg/database"
	"go-applicant-intake/pkg/email"
	"go-applicant-intake/pkg/logger"
	"go-applicant-intake/pkg/redis"
	"go-applicant-intake/pkg/sheets"
	"go-applicant-intake/pkg/storage"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting application intake backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repository
	submissionRepo := postgres.NewSubmissionRepository(dbPool)

	// 5. Setup External Services + Notification Sinks
	// Each sink is active only when its configuration is present; the
	// pipeline itself never hard-codes a sink list.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	var sinks []domain.Sink

	emailService := email.NewEmailService(cfg)
	if emailService.IsConfigured() {
		sinks = append(sinks, notify.NewEmailSink(emailService))
	} else {
		logger.Log.Warn("Email sink not fully configured - submissions will not be mailed")
	}

	if cfg.SheetSinkConfigured() {
		sheetClient, err := sheets.NewClient(startupCtx, cfg.SpreadsheetID, cfg.GoogleCredentialsBase64)
		if err != nil {
			logger.Log.Error("Failed to create sheets client", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, notify.NewSheetSink(sheetClient))
	} else {
		logger.Log.Warn("Spreadsheet sink not configured - no rows will be appended")
	}

	var uploader usecase.Uploader
	if cfg.UploadConfigured() {
		s3Store, err := storage.NewS3Store(startupCtx, storage.S3Config{
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.S3Bucket,
		})
		if err != nil {
			logger.Log.Error("Failed to create S3 store", "error", err)
			os.Exit(1)
		}
		uploader = s3Store
	} else {
		logger.Log.Warn("Resume upload not configured - records will carry inline encoding only")
	}

	fanout := notify.NewFanout(logger.Log, sinks...)
	logger.Log.Info("Notification fanout configured", "sinks", fanout.Sinks())

	// 6. Setup UseCases
	validate := validator.New()
	resumeHandler := usecase.NewResumeHandler(uploader, cfg.UploadDir, logger.Log)
	submissionUC := usecase.NewSubmissionUsecase(submissionRepo, resumeHandler, fanout, validate, logger.Log)

	// 7. Setup Rate Limiter (Redis-backed when available)
	rdb, err := redis.NewClient(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	} else {
		defer rdb.Close()
	}
	rateLimiter := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:  cfg.RateLimitThreshold,
		Window: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
	})

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SubmissionUC: submissionUC,
		RateLimiter:  rateLimiter,
		Config:       cfg,
	})

	// 9. Start Server
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
