package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/internal/pos"
	"github.com/marcosfp/colmado-api/pkg/apperror"
	"github.com/marcosfp/colmado-api/pkg/money"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// SaleService drives the register: session lifecycle, cart edits and the
// sale submission protocol. The cart is the source of truth until CreateSale
// commits; it is cleared only after the sale is confirmed persisted, so any
// failure leaves the operator exactly where they were.
type SaleService struct {
	registry       *pos.Registry
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
	discountRepo   repository.DiscountRepository
	taxRateRepo    repository.TaxRateRepository
	defaultTaxRate float64
}

// NewSaleService creates a new sale service
func NewSaleService(
	registry *pos.Registry,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	discountRepo repository.DiscountRepository,
	taxRateRepo repository.TaxRateRepository,
	defaultTaxRate float64,
) *SaleService {
	return &SaleService{
		registry:       registry,
		saleRepo:       saleRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		discountRepo:   discountRepo,
		taxRateRepo:    taxRateRepo,
		defaultTaxRate: defaultTaxRate,
	}
}

// OpenSession opens a register session using the configured default tax
// rate, falling back to the service default when none is configured.
func (s *SaleService) OpenSession(ctx context.Context) (pos.Summary, error) {
	rate := s.defaultTaxRate
	if tr, err := s.taxRateRepo.GetDefault(ctx); err != nil {
		return pos.Summary{}, err
	} else if tr != nil {
		rate = tr.Rate
	}

	cart := s.registry.Open(rate)
	return cart.Summary(time.Now()), nil
}

// GetSession returns the current cart snapshot.
func (s *SaleService) GetSession(ctx context.Context, sessionID uuid.UUID) (pos.Summary, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return pos.Summary{}, err
	}
	return cart.Summary(time.Now()), nil
}

// CloseSession discards a session and whatever cart it held.
func (s *SaleService) CloseSession(ctx context.Context, sessionID uuid.UUID) {
	s.registry.Close(sessionID)
}

// AddItem adds one unit of a product to the session's cart.
func (s *SaleService) AddItem(ctx context.Context, sessionID, productID uuid.UUID) (pos.Summary, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return pos.Summary{}, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return pos.Summary{}, err
	}
	if product == nil || !product.Active {
		return pos.Summary{}, apperror.NewNotFoundError("Product")
	}

	if err := cart.AddItem(product); err != nil {
		return pos.Summary{}, err
	}
	return cart.Summary(time.Now()), nil
}

// AddItemByBarcode adds one unit of the product matching a scanned barcode.
func (s *SaleService) AddItemByBarcode(ctx context.Context, sessionID uuid.UUID, barcode string) (pos.Summary, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return pos.Summary{}, err
	}
	if product == nil || !product.Active {
		return pos.Summary{}, apperror.NewNotFoundError("Product")
	}
	return s.AddItem(ctx, sessionID, product.ID)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *SaleService) UpdateQuantity(ctx context.Context, sessionID, productID uuid.UUID, quantity int) (pos.Summary, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return pos.Summary{}, err
	}
	if err := cart.UpdateQuantity(productID, quantity); err != nil {
		return pos.Summary{}, err
	}
	return cart.Summary(time.Now()), nil
}

// RemoveItem removes a line from the cart.
func (s *SaleService) RemoveItem(ctx context.Context, sessionID, productID uuid.UUID) (pos.Summary, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return pos.Summary{}, err
	}
	cart.RemoveItem(productID)
	return cart.Summary(time.Now()), nil
}

// SelectCustomer attaches a customer to the sale; a nil ID detaches.
func (s *SaleService) SelectCustomer(ctx context.Context, sessionID uuid.UUID, customerID *uuid.UUID) (pos.Summary, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return pos.Summary{}, err
	}

	if customerID == nil {
		cart.SelectCustomer(nil)
		return cart.Summary(time.Now()), nil
	}

	customer, err := s.customerRepo.GetByID(ctx, *customerID)
	if err != nil {
		return pos.Summary{}, err
	}
	if customer == nil {
		return pos.Summary{}, apperror.NewNotFoundError("Customer")
	}
	cart.SelectCustomer(customer)
	return cart.Summary(time.Now()), nil
}

// SelectDiscount attaches a discount to the sale; a nil ID detaches. The
// discount's window and minimum purchase are re-evaluated on every summary,
// so selecting it here does not lock in an amount.
func (s *SaleService) SelectDiscount(ctx context.Context, sessionID uuid.UUID, discountID *uuid.UUID) (pos.Summary, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return pos.Summary{}, err
	}

	if discountID == nil {
		cart.SelectDiscount(nil)
		return cart.Summary(time.Now()), nil
	}

	discount, err := s.discountRepo.GetByID(ctx, *discountID)
	if err != nil {
		return pos.Summary{}, err
	}
	if discount == nil || !discount.Active {
		return pos.Summary{}, apperror.NewNotFoundError("Discount")
	}
	cart.SelectDiscount(discount)
	return cart.Summary(time.Now()), nil
}

// CheckoutInput carries the payment details for a sale submission.
type CheckoutInput struct {
	SessionID         uuid.UUID
	UserID            uuid.UUID
	Method            enum.PaymentMethod
	AmountTendered    float64
	ReferenceNumber   *string
	AuthorizationCode *string
}

// Checkout runs the sale submission protocol: validate the cart and payment,
// persist the sale atomically, and clear the cart only once the sale is
// confirmed. Every failure path releases the in-flight guard and leaves the
// cart untouched so the operator can correct and resubmit.
func (s *SaleService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Invoice, error) {
	cart, err := s.registry.Get(input.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary, err := cart.BeginSubmission(now)
	if err != nil {
		return nil, err
	}

	payment, err := buildPayment(input, summary.Total)
	if err != nil {
		cart.FinishSubmission()
		return nil, err
	}

	invoice := &entity.Invoice{
		Number:         fmt.Sprintf("INV-%s", uuid.New().String()[:8]),
		UserID:         input.UserID,
		Status:         enum.InvoiceStatusPaid,
		SubTotal:       int64(summary.SubTotal),
		TaxAmount:      int64(summary.TaxAmount),
		DiscountAmount: int64(summary.DiscountAmount),
		TotalAmount:    int64(summary.Total),
		SubmissionKey:  cart.SubmissionKey(),
		IssuedAt:       now,
		Payment:        payment,
	}
	if summary.Customer != nil {
		invoice.CustomerID = &summary.Customer.ID
	}
	if summary.Discount != nil && summary.DiscountAmount > 0 {
		invoice.DiscountID = &summary.Discount.ID
	}

	decrements := make(map[uuid.UUID]int, len(summary.Lines))
	for _, line := range summary.Lines {
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: int64(line.UnitPrice),
			TaxRate:   line.TaxRate,
			SubTotal:  int64(line.SubTotal),
			TaxAmount: int64(line.TaxAmount),
			Total:     int64(line.Total),
		})
		decrements[line.ProductID] = line.Quantity
	}

	failedIDs, err := s.saleRepo.CreateSale(ctx, invoice, decrements)
	if err != nil {
		cart.FinishSubmission()
		return nil, err
	}
	if len(failedIDs) > 0 {
		cart.FinishSubmission()
		return nil, stockErrorFor(summary.Lines, failedIDs)
	}

	// The sale is committed; only now does the cart let go of its state.
	cart.Clear()

	return s.saleRepo.GetWithDetails(ctx, invoice.ID)
}

// buildPayment validates the payment details against the cart total.
func buildPayment(input *CheckoutInput, total money.Cents) (*entity.Payment, error) {
	if input.Method.RequiresReference() {
		if input.ReferenceNumber == nil || *input.ReferenceNumber == "" ||
			input.AuthorizationCode == nil || *input.AuthorizationCode == "" {
			return nil, pos.ErrMissingPaymentReference
		}
	}

	tendered := money.FromDecimal(input.AmountTendered)
	change := money.Cents(0)

	switch input.Method {
	case enum.PaymentMethodCash:
		if tendered < total {
			return nil, pos.ErrInsufficientPayment
		}
		change = tendered - total
	default:
		// Electronic methods settle exactly; the terminal owns the amount.
		tendered = total
	}

	return &entity.Payment{
		Method:            input.Method,
		AmountTendered:    int64(tendered),
		ChangeAmount:      int64(change),
		ReferenceNumber:   input.ReferenceNumber,
		AuthorizationCode: input.AuthorizationCode,
	}, nil
}

func stockErrorFor(lines []pos.CartLine, failedIDs []uuid.UUID) error {
	names := make([]string, 0, len(failedIDs))
	for _, id := range failedIDs {
		for _, line := range lines {
			if line.ProductID == id {
				names = append(names, line.Name)
				break
			}
		}
	}
	return &pos.InsufficientStockError{Products: names}
}

// Reconcile resolves a submission whose response was lost (timeout, dropped
// connection). If an invoice exists under the cart's submission key the sale
// landed: the cart is cleared and the invoice returned. Otherwise the sale
// never committed and the cart is left intact for a safe resubmit.
func (s *SaleService) Reconcile(ctx context.Context, sessionID uuid.UUID) (*entity.Invoice, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	invoice, err := s.saleRepo.GetBySubmissionKey(ctx, cart.SubmissionKey())
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		cart.FinishSubmission()
		return nil, nil
	}

	cart.Clear()
	return invoice, nil
}

// CancelInvoice cancels a sale and restores the stock its items consumed.
// Cancelling twice is refused without touching stock a second time.
func (s *SaleService) CancelInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	increments := make(map[uuid.UUID]int, len(invoice.Items))
	for _, item := range invoice.Items {
		increments[item.ProductID] = item.Quantity
	}

	cancelled, err := s.saleRepo.Cancel(ctx, id, increments, time.Now())
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, pos.ErrAlreadyCancelled
	}

	return s.saleRepo.GetWithDetails(ctx, id)
}

// GetInvoice retrieves an invoice with its details
func (s *SaleService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.saleRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *SaleService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListApplicableDiscounts returns the discounts the register may offer for
// the session's current subtotal.
func (s *SaleService) ListApplicableDiscounts(ctx context.Context, sessionID uuid.UUID) ([]entity.Discount, error) {
	cart, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	summary := cart.Summary(time.Now())
	return s.discountRepo.ListApplicable(ctx, int64(summary.SubTotal), time.Now())
}
