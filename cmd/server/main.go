package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"openshelf/internal/adapters/http/middleware"
	"openshelf/internal/adapters/http/routes"
	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/adapters/persistence/repositories"
	"openshelf/internal/config"
	"openshelf/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "openshelf/docs" // Swagger docs
)

// @title openshelf API
// @version 1.0
// @description Library lending backend: books, copies, users and loans.

// @contact.name API Support

// @license.name MIT

// @BasePath /api/v1
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed sample data in development
	if cfg.IsDev() {
		if err := config.NewSeeder(db).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed data: %v", err)
		}
	}

	// Start cron service for the daily long-open-loan sweep
	copyRepo := repositories.NewCopyRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	cronService := services.NewCronService(services.NewReportService(copyRepo, loanRepo))
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "openshelf API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
