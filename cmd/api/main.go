package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"roadrisk/internal/adapter"
	"roadrisk/internal/adapter/inference"
	"roadrisk/internal/cache"
	"roadrisk/internal/config"
	"roadrisk/internal/handler"
	"roadrisk/internal/logger"
	"roadrisk/internal/middleware"
	"roadrisk/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		// Log request details
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize the remote scoring client
	inferenceClient, err := inference.NewClient(cfg.Model.BaseURL, cfg.Model.Timeout)
	if err != nil {
		appLogger.Fatal("Failed to create inference client", zap.Error(err))
	}
	appLogger.Info("Inference client initialized", zap.String("base_url", cfg.Model.BaseURL))

	// Initialize Redis client and snapshot store
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	snapshotStore := service.NewSnapshotStore(cacheAdapter)

	// Initialize services
	surveyService := service.NewSurveyService(inferenceClient, snapshotStore)
	riskService := service.NewRiskService(inferenceClient)
	overlayService := service.NewOverlayService(inferenceClient, cfg.Overlay.BatchSize)

	// Initialize handlers
	surveyHandler := handler.NewSurveyHandler(surveyService)
	riskHandler := handler.NewRiskHandler(riskService, overlayService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Survey routes
	surveyGroup := apiGroup.Group("/survey")
	surveyGroup.Get("/questions", surveyHandler.GetQuestions)
	surveyGroup.Get("/state", surveyHandler.GetState)
	surveyGroup.Post("/skip", surveyHandler.Skip)
	surveyGroup.Post("/submit", surveyHandler.Submit)

	// Risk routes
	riskGroup := apiGroup.Group("/risk")
	riskGroup.Post("/current", riskHandler.CurrentRisk)
	riskGroup.Post("/overlay", riskHandler.Overlay)
	riskGroup.Post("/explain", riskHandler.Explain)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
