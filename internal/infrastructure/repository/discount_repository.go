package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	domainRepo "github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/pkg/pagination"
	"gorm.io/gorm"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}

func (r *discountRepository) Update(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *discountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Discount{}, "id = ?", id).Error
}

func (r *discountRepository) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Discount, int64, error) {
	var discounts []entity.Discount
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Discount{})

	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&discounts).Error

	return discounts, total, err
}

// ListApplicable returns the discounts the register may offer for the given
// subtotal: active, inside their date window (end date inclusive) and with
// their minimum purchase satisfied.
func (r *discountRepository) ListApplicable(ctx context.Context, subtotal int64, now time.Time) ([]entity.Discount, error) {
	// End dates are stored at midnight; comparing against the start of the
	// current day keeps a discount valid through its last day.
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var discounts []entity.Discount
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", dayStart).
		Where("min_purchase_amount IS NULL OR min_purchase_amount <= ?", subtotal).
		Order("name ASC").
		Find(&discounts).Error
	return discounts, err
}

type taxRateRepository struct {
	db *gorm.DB
}

// NewTaxRateRepository creates a new tax rate repository
func NewTaxRateRepository(db *gorm.DB) domainRepo.TaxRateRepository {
	return &taxRateRepository{db: db}
}

func (r *taxRateRepository) Create(ctx context.Context, rate *entity.TaxRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *taxRateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRate, error) {
	var rate entity.TaxRate
	err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *taxRateRepository) GetDefault(ctx context.Context) (*entity.TaxRate, error) {
	var rate entity.TaxRate
	err := r.db.WithContext(ctx).
		Where("is_default = ? AND active = ?", true, true).
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *taxRateRepository) Update(ctx context.Context, rate *entity.TaxRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *taxRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxRate{}, "id = ?", id).Error
}

func (r *taxRateRepository) List(ctx context.Context) ([]entity.TaxRate, error) {
	var rates []entity.TaxRate
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rates).Error
	return rates, err
}
