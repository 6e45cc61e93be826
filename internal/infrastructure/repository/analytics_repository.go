package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/marcosfp/colmado-api/internal/domain/enum"
	domainRepo "github.com/marcosfp/colmado-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// Every aggregate excludes cancelled and refunded invoices: status 0 is
// PENDING, 1 is PAID.

func (r *analyticsRepository) GetSalesSince(ctx context.Context, since time.Time) (int64, float64, error) {
	var result struct {
		Count   int64
		Revenue float64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) as count,
			COALESCE(SUM(total_amount), 0) / 100.0 as revenue
		FROM invoices
		WHERE status IN (0, 1) AND deleted_at IS NULL AND issued_at >= ?
	`, since).Scan(&result).Error

	if err != nil {
		return 0, 0, err
	}

	return result.Count, result.Revenue, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			Count   int
			Revenue sql.NullFloat64
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COUNT(*) as count,
				COALESCE(SUM(total_amount), 0) / 100.0 as revenue
			FROM invoices
			WHERE status IN (0, 1) AND deleted_at IS NULL
			AND issued_at >= ? AND issued_at < ?
		`, startOfDay, endOfDay).Scan(&row).Error

		if err != nil {
			return nil, err
		}

		rev := 0.0
		if row.Revenue.Valid {
			rev = row.Revenue.Float64
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:    startOfDay,
			Count:   row.Count,
			Revenue: rev,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int, since time.Time) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as product_id,
			p.name as product_name,
			p.barcode as barcode,
			COALESCE(SUM(ii.quantity), 0) as quantity_sold,
			COALESCE(SUM(ii.total), 0) / 100.0 as revenue
		FROM invoice_items ii
		JOIN products p ON p.id = ii.product_id
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.status IN (0, 1) AND i.issued_at >= ?
		AND i.deleted_at IS NULL AND ii.deleted_at IS NULL AND p.deleted_at IS NULL
		GROUP BY p.id, p.name, p.barcode
		ORDER BY revenue DESC
		LIMIT ?
	`, since, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSalesByPaymentMethod(ctx context.Context, since time.Time) ([]domainRepo.PaymentMethodResult, error) {
	var rows []struct {
		Method  int
		Count   int
		Revenue float64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			pm.method as method,
			COUNT(i.id) as count,
			COALESCE(SUM(i.total_amount), 0) / 100.0 as revenue
		FROM invoices i
		JOIN payments pm ON pm.invoice_id = i.id
		WHERE i.status IN (0, 1) AND i.issued_at >= ?
		AND i.deleted_at IS NULL
		GROUP BY pm.method
		ORDER BY revenue DESC
	`, since).Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.PaymentMethodResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domainRepo.PaymentMethodResult{
			Method:  enum.PaymentMethod(row.Method).String(),
			Count:   row.Count,
			Revenue: row.Revenue,
		})
	}

	return results, nil
}
