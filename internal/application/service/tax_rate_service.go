package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/pkg/apperror"
)

// TaxRateService handles tax configuration
type TaxRateService struct {
	taxRateRepo repository.TaxRateRepository
}

// NewTaxRateService creates a new tax rate service
func NewTaxRateService(taxRateRepo repository.TaxRateRepository) *TaxRateService {
	return &TaxRateService{taxRateRepo: taxRateRepo}
}

// TaxRateInput represents the create/update tax rate input
type TaxRateInput struct {
	Name      string
	Rate      float64
	IsDefault bool
	Active    bool
}

func (in *TaxRateInput) validate() error {
	if in.Rate < 0 || in.Rate >= 1 {
		return apperror.NewBadRequestError("Rate must be a fraction between 0 and 1")
	}
	return nil
}

// CreateTaxRate creates a new tax rate. Marking it default demotes the
// previous default.
func (s *TaxRateService) CreateTaxRate(ctx context.Context, input *TaxRateInput) (*entity.TaxRate, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.demoteDefault(ctx); err != nil {
			return nil, err
		}
	}

	rate := &entity.TaxRate{
		Name:      input.Name,
		Rate:      input.Rate,
		IsDefault: input.IsDefault,
		Active:    input.Active,
	}
	if err := s.taxRateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// UpdateTaxRate updates an existing tax rate
func (s *TaxRateService) UpdateTaxRate(ctx context.Context, id uuid.UUID, input *TaxRateInput) (*entity.TaxRate, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	rate, err := s.taxRateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperror.NewNotFoundError("Tax rate")
	}

	if input.IsDefault && !rate.IsDefault {
		if err := s.demoteDefault(ctx); err != nil {
			return nil, err
		}
	}

	rate.Name = input.Name
	rate.Rate = input.Rate
	rate.IsDefault = input.IsDefault
	rate.Active = input.Active

	if err := s.taxRateRepo.Update(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *TaxRateService) demoteDefault(ctx context.Context) error {
	current, err := s.taxRateRepo.GetDefault(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	current.IsDefault = false
	return s.taxRateRepo.Update(ctx, current)
}

// DeleteTaxRate deletes a tax rate; the default cannot be deleted.
func (s *TaxRateService) DeleteTaxRate(ctx context.Context, id uuid.UUID) error {
	rate, err := s.taxRateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return apperror.NewNotFoundError("Tax rate")
	}
	if rate.IsDefault {
		return apperror.NewBadRequestError("The default tax rate cannot be deleted")
	}
	return s.taxRateRepo.Delete(ctx, id)
}

// ListTaxRates lists all tax rates
func (s *TaxRateService) ListTaxRates(ctx context.Context) ([]entity.TaxRate, error) {
	return s.taxRateRepo.List(ctx)
}
