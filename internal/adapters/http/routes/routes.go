package routes

import (
	"openshelf/internal/adapters/http/handlers"
	"openshelf/internal/adapters/http/middleware"
	"openshelf/internal/adapters/persistence/repositories"
	"openshelf/internal/config"
	"openshelf/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	libraryRepo := repositories.NewLibraryRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	copyRepo := repositories.NewCopyRepository(db)
	userRepo := repositories.NewUserRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	loanService := services.NewLoanService(copyRepo, userRepo, loanRepo)
	userService := services.NewUserService(userRepo, loanRepo)
	reportService := services.NewReportService(copyRepo, loanRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	libraryHandler := handlers.NewLibraryHandler(libraryRepo, copyRepo)
	bookHandler := handlers.NewBookHandler(bookRepo)
	copyHandler := handlers.NewCopyHandler(copyRepo, bookRepo, libraryRepo, loanRepo)
	userHandler := handlers.NewUserHandler(userService)
	loanHandler := handlers.NewLoanHandler(loanService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupLibraryRoutes(apiV1.Group("/libraries"), libraryHandler)
	setupBookRoutes(apiV1.Group("/books"), bookHandler)
	setupCopyRoutes(apiV1.Group("/copies"), copyHandler)
	setupUserRoutes(apiV1.Group("/users"), userHandler)
	setupLoanRoutes(apiV1.Group("/loans"), loanHandler)
	setupReportRoutes(apiV1.Group("/reports"), reportHandler)
}

// setupLibraryRoutes configures library branch routes
func setupLibraryRoutes(router fiber.Router, handler *handlers.LibraryHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:slug", handler.GetBySlug)
	router.Put("/:slug", handler.Update)
	router.Delete("/:slug", handler.Delete)
	router.Get("/:slug/copies", handler.GetCopies)
}

// setupBookRoutes configures book catalog routes
func setupBookRoutes(router fiber.Router, handler *handlers.BookHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupCopyRoutes configures copy routes
func setupCopyRoutes(router fiber.Router, handler *handlers.CopyHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.GetByID)
	router.Delete("/:id", handler.Delete)
}

// setupUserRoutes configures user routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Get("/:id/loans", handler.GetLoans)
}

// setupLoanRoutes configures lending routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Post("/", middleware.WriteRateLimiter(), handler.Borrow)
	router.Get("/reference/:reference", handler.GetByReference)
	router.Get("/:id", handler.GetByID)
	router.Patch("/:id/return", middleware.WriteRateLimiter(), handler.Return)
}

// setupReportRoutes configures reporting routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/overview", handler.Overview)
	router.Get("/long-open-loans", handler.LongOpenLoans)
}
