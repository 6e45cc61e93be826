package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcosfp/colmado-api/internal/application/service"
	"github.com/marcosfp/colmado-api/internal/config"
	"github.com/marcosfp/colmado-api/internal/infrastructure/database"
	"github.com/marcosfp/colmado-api/internal/infrastructure/repository"
	"github.com/marcosfp/colmado-api/internal/pos"
	"github.com/marcosfp/colmado-api/internal/presentation/http/handler"
	"github.com/marcosfp/colmado-api/internal/presentation/http/routes"
	"github.com/marcosfp/colmado-api/pkg/printer"
	"github.com/marcosfp/colmado-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// In-memory register sessions, swept every minute
	registry := pos.NewRegistry(cfg.POS.SessionTTL, time.Minute)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	customerService := service.NewCustomerService(customerRepo)
	discountService := service.NewDiscountService(discountRepo)
	taxRateService := service.NewTaxRateService(taxRateRepo)
	saleService := service.NewSaleService(registry, saleRepo, productRepo, customerRepo, discountRepo, taxRateRepo, cfg.POS.DefaultTaxRate)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo, customerRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
		cfg.Printer.Timeout,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	receiptService := service.NewReceiptService(thermalPrinter, saleRepo, service.StoreInfo{
		Name:    cfg.Store.Name,
		RNC:     cfg.Store.RNC,
		Address: cfg.Store.Address,
		Phone:   cfg.Store.Phone,
	}, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		POS:       handler.NewPOSHandler(saleService),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		Customer:  handler.NewCustomerHandler(customerService),
		Discount:  handler.NewDiscountHandler(discountService),
		TaxRate:   handler.NewTaxRateHandler(taxRateService),
		Invoice:   handler.NewInvoiceHandler(saleService, receiptService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		User:      handler.NewUserHandler(userService),
		Printer:   handler.NewPrinterHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
