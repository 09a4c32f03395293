package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"minutemate/config"
	"minutemate/middleware"
	"minutemate/routes"
	"minutemate/utils"
	"minutemate/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "SERVER: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Sentry when a DSN is configured
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry initialization failed: %v", err)
		}
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Initialize mailer and change-event notifier
	mailer := utils.NewMailer(config.AppConfig.SMTP)
	notifier := utils.NewNotifier(config.AppConfig.Redis)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Relay change events published by other instances
	go notifier.Relay(ctx)

	// Initialize and start reminder worker
	reminderWorker := worker.NewReminderWorker(config.DB, mailer, log.New(os.Stdout, "REMINDER: ", log.LstdFlags))
	go reminderWorker.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, config.DB, mailer, notifier)

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
