package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"shoppergpt-backend/internal/api"
	"shoppergpt-backend/internal/config"
	"shoppergpt-backend/internal/handlers"
	"shoppergpt-backend/internal/integrations/affiliate"
	"shoppergpt-backend/internal/integrations/whatsapp"
	"shoppergpt-backend/internal/services"
	"shoppergpt-backend/internal/store/postgres"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("FATAL: Failed to create logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("starting ShopperGPT backend")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("unable to create database connection pool", zap.Error(err))
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		logger.Fatal("unable to ping database", zap.Error(err))
	}
	logger.Info("database connection pool established")

	// 3. Initialize Dependencies (Store, Integrations, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool, logger)
	if err := pgStore.InitSchema(dbCtx); err != nil {
		logger.Fatal("failed to initialize database schema", zap.Error(err))
	}

	sender := whatsapp.NewSender(whatsapp.SenderConfig{
		APIToken:      cfg.WhatsAppAPIToken,
		PhoneNumberID: cfg.WhatsAppPhoneNumberID,
		BaseURL:       cfg.WhatsAppAPIBaseURL,
		Timeout:       cfg.SendTimeout,
	}, logger)

	contextBuilder := services.NewContextBuilder(pgStore, cfg.HistoryFetchLimit, cfg.HistoryTurnCap)
	aiService := services.NewAIService(services.AIServiceOptions{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Temperature: cfg.OpenAITemperature,
		Timeout:     cfg.AITimeout,
	}, contextBuilder, logger)

	affiliateManager := affiliate.NewManager()
	recommender := services.NewRecommendationService(affiliateManager, logger)

	webhookService := services.NewWebhookService(pgStore, aiService, sender, recommender, logger)
	adminService := services.NewAdminService(pgStore, services.AdminConfig{
		Username:        cfg.AdminUsername,
		Password:        cfg.AdminPassword,
		JWTSecret:       cfg.JWTSecret,
		TokenExpiration: cfg.TokenExpiration,
	}, logger)

	webhookHandlers := handlers.NewWebhookHandlers(webhookService, cfg.WhatsAppVerifyToken, cfg.PipelineTimeout, logger)
	adminHandlers := handlers.NewAdminHandlers(adminService, logger)

	// 4. Setup Router & Inject Dependencies
	router := api.NewRouter(api.RouterDependencies{
		WebhookHandlers: webhookHandlers,
		AdminHandlers:   adminHandlers,
		AdminService:    adminService,
		Logger:          logger,
	})

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	<-stopChan
	logger.Info("shutdown signal received, draining")

	// In-flight webhook pipelines are fire-and-forget; the shutdown window
	// only covers open HTTP connections.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server shutdown complete")
}
