package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/client"
	"github.com/promoforge/api/internal/config"
	"github.com/promoforge/api/internal/handler"
	"github.com/promoforge/api/internal/middleware"
	"github.com/promoforge/api/internal/service"
	"github.com/promoforge/api/internal/worker"
	ws "github.com/promoforge/api/internal/websocket"
	"github.com/promoforge/api/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the template catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load template catalog: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not available: %v", err)
	}

	// Initialize Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize validator
	validate := validator.New()

	// Initialize WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize external clients
	llmClient := client.NewLLMClient(&cfg.LLM)
	sensoClient := client.NewSensoClient(&cfg.Senso)
	if !llmClient.IsConfigured() {
		log.Println("Info: LLM not configured, planner will use the deterministic fallback")
	}
	if !sensoClient.IsConfigured() {
		log.Println("Info: Senso not configured, props will use heuristic extraction only")
	}

	// Initialize services
	synthesizer := service.NewPropSynthesizer(cat, sensoClient)
	director := service.NewDirectorService(llmClient, cat, synthesizer, cfg.Video)
	videoService := service.NewVideoService(cat, director, sensoClient, cfg.Video)
	jobService := service.NewJobService(redisClient, asynqClient)

	// Initialize handlers
	videoHandler := handler.NewVideoHandler(videoService, jobService, validate)
	templatesHandler := handler.NewTemplatesHandler(cat)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path}\n"
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams} ${body}\n"
		log.Println("Debug logging enabled")
	}
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Base URL - timestamp
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().Unix(),
		})
	})

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"llm":   llmClient.IsConfigured(),
				"senso": sensoClient.IsConfigured(),
			},
			"templates": len(cat.Templates),
		})
	})

	// API routes
	api := app.Group("/api", authMiddleware.Authenticate())

	// Template catalog routes
	templates := api.Group("/templates")
	templates.Get("/", templatesHandler.List)
	templates.Get("/:id", templatesHandler.Get)

	// Video routes
	video := api.Group("/video")
	video.Post("/generate", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerMin), videoHandler.Generate)
	video.Post("/jobs", rateLimiter.JobsLimit(cfg.RateLimit.JobsPerHour), videoHandler.StartJob)
	video.Get("/jobs/:jobId/status", videoHandler.Status)
	video.Get("/jobs/:jobId/result", videoHandler.Result)
	video.Post("/jobs/:jobId/cancel", videoHandler.Cancel)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/jobs/:jobId", websocket.New(func(c *websocket.Conn) {
		jobID := c.Params("jobId")
		hub.HandleConnection(c, jobID)
	}))

	// Start Asynq worker server
	go startWorkerServer(cfg, jobService, videoService, hub)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func startWorkerServer(
	cfg *config.Config,
	jobService *service.JobService,
	videoService *service.VideoService,
	hub *ws.Hub,
) {
	asynqLogLevel := asynq.InfoLevel
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		asynqLogLevel = asynq.DebugLevel
	} else if strings.EqualFold(cfg.Server.LogLevel, "warn") {
		asynqLogLevel = asynq.WarnLevel
	} else if strings.EqualFold(cfg.Server.LogLevel, "error") {
		asynqLogLevel = asynq.ErrorLevel
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"generate": 10,
			},
			LogLevel: asynqLogLevel,
		},
	)

	generateWorker := worker.NewGenerateWorker(jobService, videoService, hub)

	mux := asynq.NewServeMux()
	mux.HandleFunc(service.TaskTypeGenerate, generateWorker.ProcessTask)

	if err := srv.Run(mux); err != nil {
		log.Printf("Asynq worker error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    response.CodeServiceError,
			"message": message,
		},
	})
}
