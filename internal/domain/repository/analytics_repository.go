package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	Barcode      string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Count   int
	Revenue float64
}

// PaymentMethodResult represents sales aggregated by payment method
type PaymentMethodResult struct {
	Method  string
	Count   int
	Revenue float64
}

// AnalyticsRepository defines interface for sales-reporting aggregation queries.
// All aggregates exclude cancelled and refunded invoices.
type AnalyticsRepository interface {
	// GetSalesSince returns invoice count and revenue since the given time
	GetSalesSince(ctx context.Context, since time.Time) (int64, float64, error)

	// GetDailySales returns per-day sales for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTopProducts returns the top selling products by revenue
	GetTopProducts(ctx context.Context, limit int, since time.Time) ([]TopProductResult, error)

	// GetSalesByPaymentMethod returns sales aggregated by payment method
	GetSalesByPaymentMethod(ctx context.Context, since time.Time) ([]PaymentMethodResult, error)
}
