package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcosfp/colmado-api/internal/config"
	domainRepo "github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/internal/presentation/http/handler"
	"github.com/marcosfp/colmado-api/internal/presentation/http/middleware"
	"github.com/marcosfp/colmado-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	POS       *handler.POSHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Customer  *handler.CustomerHandler
	Discount  *handler.DiscountHandler
	TaxRate   *handler.TaxRateHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	authGroup := rg.Group("/auth")
	{
		authGroup.GET("/me", h.Auth.Me)
		authGroup.POST("/change-password", h.Auth.ChangePassword)
	}

	// Register sessions and checkout
	pos := rg.Group("/pos/sessions")
	{
		pos.POST("", h.POS.OpenSession)
		pos.GET("/:id", h.POS.GetSession)
		pos.DELETE("/:id", h.POS.CloseSession)
		pos.POST("/:id/items", h.POS.AddItem)
		pos.PUT("/:id/items/:productId", h.POS.UpdateQuantity)
		pos.DELETE("/:id/items/:productId", h.POS.RemoveItem)
		pos.PUT("/:id/customer", h.POS.SelectCustomer)
		pos.PUT("/:id/discount", h.POS.SelectDiscount)
		pos.GET("/:id/discounts", h.POS.ListApplicableDiscounts)
		pos.POST("/:id/checkout", middleware.IdempotencyRequired(idempotency), h.POS.Checkout)
		pos.GET("/:id/reconcile", h.POS.Reconcile)
	}

	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/search", h.Product.Search)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireAdmin(), h.Product.Create)
		products.PUT("/:id", middleware.RequireAdmin(), h.Product.Update)
		products.DELETE("/:id", middleware.RequireAdmin(), h.Product.Delete)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", middleware.RequireAdmin(), h.Category.Create)
		categories.PUT("/:id", middleware.RequireAdmin(), h.Category.Update)
		categories.DELETE("/:id", middleware.RequireAdmin(), h.Category.Delete)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/search", h.Customer.Search)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", middleware.Idempotency(idempotency), h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireAdmin(), h.Customer.Delete)
	}

	discounts := rg.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.GET("/:id", h.Discount.Get)
		discounts.POST("", middleware.RequireAdmin(), h.Discount.Create)
		discounts.PUT("/:id", middleware.RequireAdmin(), h.Discount.Update)
		discounts.DELETE("/:id", middleware.RequireAdmin(), h.Discount.Delete)
	}

	taxRates := rg.Group("/tax-rates")
	{
		taxRates.GET("", h.TaxRate.List)
		taxRates.POST("", middleware.RequireAdmin(), h.TaxRate.Create)
		taxRates.PUT("/:id", middleware.RequireAdmin(), h.TaxRate.Update)
		taxRates.DELETE("/:id", middleware.RequireAdmin(), h.TaxRate.Delete)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/cancel", middleware.RequireAdmin(), h.Invoice.Cancel)
		invoices.POST("/:id/receipt", h.Invoice.PrintReceipt)
	}

	rg.GET("/dashboard", h.Dashboard.Stats)

	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.Test)
	}

	users := rg.Group("/users", middleware.RequireAdmin())
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
