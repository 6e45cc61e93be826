package service

import (
	"context"
	"time"

	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// DashboardService provides back-office statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
	}
}

// DashboardStats represents the back-office overview
type DashboardStats struct {
	TotalCustomers  int64                            `json:"total_customers"`
	TotalProducts   int64                            `json:"total_products"`
	LowStockCount   int64                            `json:"low_stock_count"`
	TodaySales      int64                            `json:"today_sales"`
	TodayRevenue    float64                          `json:"today_revenue"`
	MonthSales      int64                            `json:"month_sales"`
	MonthRevenue    float64                          `json:"month_revenue"`
	DailySalesData  []repository.DailySalesResult    `json:"daily_sales_data"`
	TopProducts     []repository.TopProductResult    `json:"top_products"`
	SalesByMethod   []repository.PaymentMethodResult `json:"sales_by_method"`
}

// GetDashboardStats returns the back-office overview: counts, today's and
// this month's sales, a 7-day sales series and the month's top products.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1 // We only need the count

	_, customerCount, err := s.customerRepo.List(ctx, countParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	productParams := &repository.ProductFilterParams{Pagination: countParams}
	_, productCount, err := s.productRepo.List(ctx, productParams)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = productCount

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockCount = int64(len(lowStock))

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todayCount, todayRevenue, err := s.analyticsRepo.GetSalesSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	stats.TodaySales = todayCount
	stats.TodayRevenue = todayRevenue

	monthCount, monthRevenue, err := s.analyticsRepo.GetSalesSince(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}
	stats.MonthSales = monthCount
	stats.MonthRevenue = monthRevenue

	daily, err := s.analyticsRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}
	stats.DailySalesData = daily

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, 5, startOfMonth)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = topProducts

	byMethod, err := s.analyticsRepo.GetSalesByPaymentMethod(ctx, startOfMonth)
	if err != nil {
		return nil, err
	}
	stats.SalesByMethod = byMethod

	return stats, nil
}
