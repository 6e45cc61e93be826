package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// DiscountRepository defines the interface for discount data operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	Update(ctx context.Context, discount *entity.Discount) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Discount, int64, error)
	// ListApplicable returns active discounts whose date window contains now
	// and whose minimum purchase amount (if set) is satisfied by the given
	// subtotal in cents.
	ListApplicable(ctx context.Context, subtotal int64, now time.Time) ([]entity.Discount, error)
}

// TaxRateRepository defines the interface for tax configuration operations
type TaxRateRepository interface {
	Create(ctx context.Context, rate *entity.TaxRate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRate, error)
	GetDefault(ctx context.Context) (*entity.TaxRate, error)
	Update(ctx context.Context, rate *entity.TaxRate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.TaxRate, error)
}
