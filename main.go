// File: vmake/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vmake/config"
	"vmake/handlers"
	"vmake/middleware"
	"vmake/routes"
	ai "vmake/services/intelligence"
	"vmake/services/sheets"
	"vmake/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env first so viper's AutomaticEnv picks the values up.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Optional redis-backed AI response cache.
	var responseCache *ai.ResponseCache
	if addr := config.AppConfig.RedisAddr; addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisCacheDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis unreachable, AI response cache disabled", zap.Error(err))
		} else {
			ttl := time.Duration(config.AppConfig.AICacheTTLMin) * time.Minute
			responseCache = ai.NewResponseCache(client, ttl)
		}
		cancel()
	}

	// The AI service is optional: without an API key the health endpoint
	// reports it unavailable and process-project fails with a clear message.
	var aiSvc ai.Service
	if config.GeminiConfigured() {
		svc, err := ai.New(
			config.AppConfig.AIProvider,
			config.AppConfig.GeminiAPIKey,
			config.AppConfig.GeminiModel,
			responseCache,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize AI service: %v", err)
		}
		aiSvc = svc
		logger.Info("AI Service initialized successfully")
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI service disabled")
	}

	repo, err := sheets.NewSheetsRepo(
		context.Background(),
		config.AppConfig.GoogleSheetID,
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.SheetName,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize sheets repo: %v", err)
	}

	projectHandler := handlers.NewProjectHandler(aiSvc, repo)
	routes.RegisterRoutes(router, projectHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3001"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	logger.Info("Server configuration",
		zap.String("environment", config.GetEnv()),
		zap.String("corsOrigin", config.AppConfig.CORSOrigin),
		zap.Bool("geminiApiConfigured", config.GeminiConfigured()),
		zap.Bool("googleSheetsConfigured", config.AppConfig.GoogleSheetID != ""),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
