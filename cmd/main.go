package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studyhub-dev/studyhub/config"
	"github.com/studyhub-dev/studyhub/internal/ai"
	"github.com/studyhub-dev/studyhub/internal/api/middleware"
	"github.com/studyhub-dev/studyhub/internal/api/v1/handlers"
	v1 "github.com/studyhub-dev/studyhub/internal/api/v1/routes"
	"github.com/studyhub-dev/studyhub/internal/db"
	"github.com/studyhub-dev/studyhub/internal/db/repos"
	"github.com/studyhub-dev/studyhub/internal/logger"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/internal/storage"
)

func main() {
	// Load .env file if present
	envErr := godotenv.Load()
	logger.InitializeAndConfigure()
	if envErr != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	gormDB, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     config.GetEnvInt("DB_PORT", db.DefaultPort),
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	files, err := storage.NewLocalStore(config.GetEnv("UPLOAD_DIR", "uploads"))
	if err != nil {
		logger.Fatalf("Failed to initialize upload storage: %v", err)
	}

	gateway := buildGateway()

	userRepo := repos.NewUserRepository(gormDB)
	projectRepo := repos.NewProjectRepository(gormDB)
	taskRepo := repos.NewTaskRepository(gormDB)
	commentRepo := repos.NewCommentRepository(gormDB)
	attachmentRepo := repos.NewAttachmentRepository(gormDB)
	channelRepo := repos.NewChannelRepository(gormDB)
	notificationRepo := repos.NewNotificationRepository(gormDB)
	analysisRepo := repos.NewAnalysisRepository(gormDB)

	notificationSvc := services.NewNotificationService(notificationRepo, taskRepo)
	notificationSvc.StartSweep()

	api := handlers.NewAPIHandler(
		services.NewUserService(userRepo),
		services.NewProjectService(projectRepo, channelRepo),
		services.NewTaskService(taskRepo, projectRepo, notificationRepo),
		services.NewCommentService(commentRepo, taskRepo, notificationRepo),
		services.NewChannelService(channelRepo),
		notificationSvc,
		services.NewCalendarService(projectRepo, taskRepo),
		services.NewInsightService(gateway, projectRepo, taskRepo, analysisRepo),
		services.NewAttachmentService(attachmentRepo),
		files,
	)

	limiter := middleware.NewRateLimiter(
		config.GetEnvInt("RATE_LIMIT", 60),
		time.Minute,
	)
	limiter.Start()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    25 * 1024 * 1024,
	})

	app.Use(middleware.Logger())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes
	secret := []byte(config.GetEnv("JWT_SECRET", "dev-secret"))
	v1.Register(app, api, middleware.Auth(secret), limiter.Handler())

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("Shutting down")
		limiter.Stop()
		notificationSvc.Stop()
		_ = app.Shutdown()
	}()

	addr := ":" + config.GetEnv("PORT", "8080")
	if err := app.Listen(addr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}

// buildGateway assembles the provider chain from whatever API keys are
// configured. Order matters: the first configured provider is tried first.
func buildGateway() *ai.Gateway {
	var providers []ai.Provider
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		providers = append(providers, ai.NewOpenAIProvider(key))
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		providers = append(providers, ai.NewAnthropicProvider(key))
	}
	if len(providers) == 0 {
		logger.Warn("No AI provider configured, AI features degraded")
	}
	return ai.NewGateway(providers...)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
