package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/pkg/apperror"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name         string
	Document     string
	DocumentType enum.DocumentType
	Email        *string
	Phone        *string
	Address      *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	existing, err := s.customerRepo.GetByDocument(ctx, input.Document)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this document already exists")
	}

	customer := &entity.Customer{
		Name:         input.Name,
		Document:     input.Document,
		DocumentType: input.DocumentType,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name         *string
	Document     *string
	DocumentType *enum.DocumentType
	Email        *string
	Phone        *string
	Address      *string
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Document != nil && *input.Document != customer.Document {
		existing, err := s.customerRepo.GetByDocument(ctx, *input.Document)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this document already exists")
		}
		customer.Document = *input.Document
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.DocumentType != nil {
		customer.DocumentType = *input.DocumentType
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// SearchCustomers backs the register's customer lookup box.
func (s *CustomerService) SearchCustomers(ctx context.Context, term string, limit int) ([]entity.Customer, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.customerRepo.Search(ctx, term, limit)
}
