package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"izaanhr/cv-intake-bot/internal/config"
	"izaanhr/cv-intake-bot/internal/handlers"
	"izaanhr/cv-intake-bot/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.DownloadDir)
	if err := storageService.EnsureDownloadDir(); err != nil {
		log.Fatalf("❌ Failed to create download directory: %v", err)
	}

	whatsappService := services.NewWhatsAppService(cfg.WhatsApp)
	ollamaService := services.NewOllamaService(cfg.Ollama)
	pdfParser := services.NewPDFParserService()
	ledgerService := services.NewLedgerService(cfg.Storage.LedgerFile)
	sessionTracker := services.NewSessionTracker()
	log.Println("✅ Services initialized successfully")

	// Initialize Drive sync; the pipeline runs local-only if it fails
	var driveService services.DriveService
	if cfg.Drive.Enabled {
		var err error
		driveService, err = services.NewDriveService(context.Background(), cfg.Drive)
		if err != nil {
			log.Printf("⚠️  Drive sync disabled: %v\n", err)
			driveService = nil
		} else {
			log.Println("✅ Drive sync initialized successfully")
		}
	}

	// Initialize processor
	processor := services.NewProcessorService(
		whatsappService,
		storageService,
		pdfParser,
		ollamaService,
		ledgerService,
		driveService,
		cfg.Storage.MinCVLength,
	)
	log.Println("✅ Processor initialized")

	// Initialize worker
	worker := services.NewWorker(
		processor,
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(
		cfg.WhatsApp.VerifyToken,
		sessionTracker,
		whatsappService,
		worker,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "WhatsApp CV Intake Bot",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	app.Get("/webhook", webhookHandler.HandleVerify)
	app.Post("/webhook", webhookHandler.HandleWebhook)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
