package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// SaleRepository owns the transactional boundary of the point of sale: sale
// creation and cancellation are single database transactions that either
// fully apply (stock movement + invoice + items + payment) or fully roll back.
type SaleRepository interface {
	// CreateSale persists the invoice with its items and payment and
	// decrements stock for every line in one transaction. If any product has
	// insufficient stock, nothing is persisted and the failing product IDs
	// are returned with a nil error.
	CreateSale(ctx context.Context, invoice *entity.Invoice, decrements map[uuid.UUID]int) ([]uuid.UUID, error)

	// GetWithDetails returns the invoice with customer, discount, payment,
	// items and item products preloaded.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// GetBySubmissionKey finds an invoice by the idempotency key it was
	// submitted under. Used to reconcile after a timed-out submission.
	GetBySubmissionKey(ctx context.Context, key string) (*entity.Invoice, error)

	// Cancel restores stock for every item and flips the invoice status to
	// CANCELLED in one transaction. Returns false with a nil error when the
	// invoice was already cancelled (no stock is restored twice).
	Cancel(ctx context.Context, id uuid.UUID, increments map[uuid.UUID]int, at time.Time) (bool, error)

	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
