package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/memory"
	redisrepo "portfolio-backend/internal/repository/redis"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Mail Relay API
// @version         1.0
// @description     Receives portfolio contact form submissions and relays them by email.
// @host            localhost:5000
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting mail relay", "port", cfg.Port, "mail_provider", cfg.MailProvider)
	seclog := security.InitSecurityLogger("portfolio-mail-relay", cfg.Environment())
	defer seclog.Sync()

	// 3. Setup Mail Transport
	transport, err := email.NewTransport(cfg, logger.Log)
	if err != nil {
		logger.Log.Error("Failed to create mail transport", "error", err)
		os.Exit(1)
	}
	if transport == nil {
		logger.Log.Warn("Mail disabled - contact form will be unavailable")
	}

	// 4. Setup Idempotency Store
	var idempotencyRepo domain.IdempotencyRepository = memory.NewIdempotencyRepository()
	redisClient, err := redis.Connect(context.Background(), redis.Config{
		URL:      cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	switch {
	case err == nil:
		defer redisClient.Close()
		idempotencyRepo = redisrepo.NewIdempotencyRepository(redisClient)
		logger.Log.Info("Idempotency keys stored in Redis")
	case cfg.RedisURL != "":
		logger.Log.Warn("Redis unavailable, keeping idempotency keys in memory", "error", err)
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(transport, idempotencyRepo, usecase.ContactSettingsFromConfig(cfg))
	healthUC := usecase.NewHealthUsecase(transport, idempotencyRepo)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		HealthUC:       healthUC,
		Config:         cfg,
		SecurityLogger: seclog,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Long enough for an in-flight contact request to finish both sends.
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.MailSendTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
