package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	domainRepo "github.com/marcosfp/colmado-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CreateSale decrements stock for every line and inserts the invoice with its
// items and payment in one transaction. A line whose stock guard matches no
// row marks the product as failed; any failure rolls the whole sale back so
// partially-decremented stock can never be observed.
func (r *saleRepository) CreateSale(ctx context.Context, invoice *entity.Invoice, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND stock >= ?", id, amount).
				Update("stock", gorm.Expr("stock - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		// Items and payment ride along through gorm's association handling.
		return tx.Create(invoice).Error
	})

	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Discount").
		Preload("Payment").
		Preload("Items.Product").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *saleRepository) GetBySubmissionKey(ctx context.Context, key string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Payment").
		Preload("Items.Product").
		First(&invoice, "submission_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

// Cancel flips the invoice to CANCELLED and restores stock in one
// transaction. The status guard on the UPDATE makes the operation
// idempotent: a second cancel matches no row and restocks nothing.
func (r *saleRepository) Cancel(ctx context.Context, id uuid.UUID, increments map[uuid.UUID]int, at time.Time) (bool, error) {
	cancelled := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Invoice{}).
			Where("id = ? AND status <> ?", id, enum.InvoiceStatusCancelled).
			Updates(map[string]interface{}{
				"status":       enum.InvoiceStatusCancelled,
				"cancelled_at": at,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return nil
		}
		cancelled = true

		for pid, amount := range increments {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", pid).
				Update("stock", gorm.Expr("stock + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})

	return cancelled, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Where("number ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("issued_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("issued_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Preload("Payment").
		Order("issued_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}
