package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/pkg/apperror"
	"github.com/marcosfp/colmado-api/pkg/money"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// DiscountService handles discount configuration
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// DiscountInput represents the create/update discount input. Percentage
// values and money amounts arrive as decimals and are stored in hundredths.
type DiscountInput struct {
	Name              string
	Type              enum.DiscountType
	Value             float64
	MinPurchaseAmount *float64
	MaxDiscountAmount *float64
	StartDate         *time.Time
	EndDate           *time.Time
	Active            bool
}

func (in *DiscountInput) validate() error {
	switch in.Type {
	case enum.DiscountTypePercentage:
		if in.Value <= 0 || in.Value > 100 {
			return apperror.NewBadRequestError("Percentage must be between 0 and 100")
		}
	case enum.DiscountTypeFixed:
		if in.Value <= 0 {
			return apperror.NewBadRequestError("Fixed amount must be positive")
		}
	default:
		return apperror.NewBadRequestError("Unknown discount type")
	}

	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return apperror.NewBadRequestError("End date must not precede start date")
	}
	return nil
}

func (in *DiscountInput) apply(d *entity.Discount) {
	d.Name = in.Name
	d.Type = in.Type
	d.Value = int64(money.FromDecimal(in.Value))
	d.StartDate = in.StartDate
	d.EndDate = in.EndDate
	d.Active = in.Active

	d.MinPurchaseAmount = nil
	if in.MinPurchaseAmount != nil {
		v := int64(money.FromDecimal(*in.MinPurchaseAmount))
		d.MinPurchaseAmount = &v
	}
	d.MaxDiscountAmount = nil
	if in.MaxDiscountAmount != nil {
		v := int64(money.FromDecimal(*in.MaxDiscountAmount))
		d.MaxDiscountAmount = &v
	}
}

// CreateDiscount creates a new discount
func (s *DiscountService) CreateDiscount(ctx context.Context, input *DiscountInput) (*entity.Discount, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	discount := &entity.Discount{}
	input.apply(discount)

	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// GetDiscount retrieves a discount by ID
func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// UpdateDiscount updates an existing discount
func (s *DiscountService) UpdateDiscount(ctx context.Context, id uuid.UUID, input *DiscountInput) (*entity.Discount, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}

	input.apply(discount)

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// DeleteDiscount deletes a discount
func (s *DiscountService) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return apperror.NewNotFoundError("Discount")
	}
	return s.discountRepo.Delete(ctx, id)
}

// ListDiscounts lists discounts
func (s *DiscountService) ListDiscounts(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.Discount], error) {
	discounts, total, err := s.discountRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(discounts, pag), nil
}
