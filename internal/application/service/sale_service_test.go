package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/internal/pos"
	"github.com/marcosfp/colmado-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSaleRepo records CreateSale calls and simulates the transactional
// behavior of the real repository.
type fakeSaleRepo struct {
	invoices     map[uuid.UUID]*entity.Invoice
	bySubmission map[string]*entity.Invoice
	createCalls  int
	failStockIDs []uuid.UUID
	createErr    error
	restockCalls int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		invoices:     make(map[uuid.UUID]*entity.Invoice),
		bySubmission: make(map[string]*entity.Invoice),
	}
}

func (f *fakeSaleRepo) CreateSale(ctx context.Context, invoice *entity.Invoice, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if len(f.failStockIDs) > 0 {
		return f.failStockIDs, nil
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	f.invoices[invoice.ID] = invoice
	f.bySubmission[invoice.SubmissionKey] = invoice
	return nil, nil
}

func (f *fakeSaleRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return f.invoices[id], nil
}

func (f *fakeSaleRepo) GetBySubmissionKey(ctx context.Context, key string) (*entity.Invoice, error) {
	return f.bySubmission[key], nil
}

func (f *fakeSaleRepo) Cancel(ctx context.Context, id uuid.UUID, increments map[uuid.UUID]int, at time.Time) (bool, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return false, nil
	}
	if inv.Status == enum.InvoiceStatusCancelled {
		return false, nil
	}
	inv.Status = enum.InvoiceStatusCancelled
	inv.CancelledAt = &at
	f.restockCalls++
	return true, nil
}

func (f *fakeSaleRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return nil, 0, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (f *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) Search(ctx context.Context, term string, limit int) ([]entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) GetByDocument(ctx context.Context, document string) (*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}
func (f *fakeCustomerRepo) Search(ctx context.Context, term string, limit int) ([]entity.Customer, error) {
	return nil, nil
}

type fakeDiscountRepo struct {
	discounts map[uuid.UUID]*entity.Discount
}

func (f *fakeDiscountRepo) Create(ctx context.Context, d *entity.Discount) error { return nil }
func (f *fakeDiscountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	return f.discounts[id], nil
}
func (f *fakeDiscountRepo) Update(ctx context.Context, d *entity.Discount) error { return nil }
func (f *fakeDiscountRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeDiscountRepo) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Discount, int64, error) {
	return nil, 0, nil
}
func (f *fakeDiscountRepo) ListApplicable(ctx context.Context, subtotal int64, now time.Time) ([]entity.Discount, error) {
	return nil, nil
}

type fakeTaxRateRepo struct {
	def *entity.TaxRate
}

func (f *fakeTaxRateRepo) Create(ctx context.Context, r *entity.TaxRate) error { return nil }
func (f *fakeTaxRateRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRate, error) {
	return nil, nil
}
func (f *fakeTaxRateRepo) GetDefault(ctx context.Context) (*entity.TaxRate, error) {
	return f.def, nil
}
func (f *fakeTaxRateRepo) Update(ctx context.Context, r *entity.TaxRate) error { return nil }
func (f *fakeTaxRateRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (f *fakeTaxRateRepo) List(ctx context.Context) ([]entity.TaxRate, error)  { return nil, nil }

func newTestSaleService(saleRepo *fakeSaleRepo, products ...*entity.Product) *SaleService {
	productRepo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	return NewSaleService(
		pos.NewRegistry(time.Hour, time.Hour),
		saleRepo,
		productRepo,
		&fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)},
		&fakeDiscountRepo{discounts: make(map[uuid.UUID]*entity.Discount)},
		&fakeTaxRateRepo{def: &entity.TaxRate{Rate: 0.18, IsDefault: true, Active: true}},
		0.18,
	)
}

func saleTestProduct(price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:      uuid.New(),
		Name:    "Arroz Selecto 5lb",
		Barcode: "7460135000029",
		Price:   price,
		Stock:   stock,
		Active:  true,
	}
}

func TestCheckoutEmptyCartNeverReachesRepository(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := newTestSaleService(repo)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 100,
	})
	assert.ErrorIs(t, err, pos.ErrEmptyCart)
	assert.Equal(t, 0, repo.createCalls)
}

func TestCheckoutCashHappyPath(t *testing.T) {
	repo := newFakeSaleRepo()
	p := saleTestProduct(10000, 5) // 100.00
	svc := newTestSaleService(repo, p)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)

	invoice, err := svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 250.00,
	})
	require.NoError(t, err)
	require.NotNil(t, invoice)

	// 200.00 + 18% ITBIS = 236.00; change from 250.00 is 14.00.
	assert.Equal(t, int64(20000), invoice.SubTotal)
	assert.Equal(t, int64(3600), invoice.TaxAmount)
	assert.Equal(t, int64(23600), invoice.TotalAmount)
	require.NotNil(t, invoice.Payment)
	assert.Equal(t, int64(25000), invoice.Payment.AmountTendered)
	assert.Equal(t, int64(1400), invoice.Payment.ChangeAmount)
	assert.Equal(t, enum.InvoiceStatusPaid, invoice.Status)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, 2, invoice.Items[0].Quantity)

	// A confirmed sale clears the cart.
	after, err := svc.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, after.Lines)
	assert.Equal(t, int64(0), int64(after.Total))
}

func TestCheckoutInsufficientCashLeavesCartIntact(t *testing.T) {
	repo := newFakeSaleRepo()
	p := saleTestProduct(10000, 5)
	svc := newTestSaleService(repo, p)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 100.00, // total is 118.00
	})
	assert.ErrorIs(t, err, pos.ErrInsufficientPayment)
	assert.Equal(t, 0, repo.createCalls)

	after, err := svc.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Len(t, after.Lines, 1)

	// The operator can correct the amount and resubmit.
	invoice, err := svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 118.00,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), invoice.Payment.ChangeAmount)
}

func TestCheckoutCardRequiresReference(t *testing.T) {
	repo := newFakeSaleRepo()
	p := saleTestProduct(10000, 5)
	svc := newTestSaleService(repo, p)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), &CheckoutInput{
		SessionID: session.SessionID,
		UserID:    uuid.New(),
		Method:    enum.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, pos.ErrMissingPaymentReference)
	assert.Equal(t, 0, repo.createCalls)

	ref := "REF-1234"
	auth := "AUTH-5678"
	invoice, err := svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:         session.SessionID,
		UserID:            uuid.New(),
		Method:            enum.PaymentMethodCard,
		ReferenceNumber:   &ref,
		AuthorizationCode: &auth,
	})
	require.NoError(t, err)
	// Card settles exactly: tendered equals total, no change.
	assert.Equal(t, invoice.TotalAmount, invoice.Payment.AmountTendered)
	assert.Equal(t, int64(0), invoice.Payment.ChangeAmount)
}

func TestCheckoutRepositoryFailureLeavesCartIntact(t *testing.T) {
	repo := newFakeSaleRepo()
	repo.createErr = errors.New("connection reset")
	p := saleTestProduct(10000, 5)
	svc := newTestSaleService(repo, p)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 118.00,
	})
	require.Error(t, err)

	after, err := svc.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Len(t, after.Lines, 1)

	// After the backend recovers the same cart submits cleanly.
	repo.createErr = nil
	_, err = svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 118.00,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.createCalls)
}

func TestCheckoutStockRejectionSurfacesProductNames(t *testing.T) {
	repo := newFakeSaleRepo()
	p := saleTestProduct(10000, 5)
	repo.failStockIDs = []uuid.UUID{p.ID}
	svc := newTestSaleService(repo, p)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 118.00,
	})
	var stockErr *pos.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Contains(t, stockErr.Products, p.Name)

	// Cart stays put for the operator to adjust quantities.
	after, err := svc.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Len(t, after.Lines, 1)
}

func TestReconcileAfterLostResponse(t *testing.T) {
	repo := newFakeSaleRepo()
	p := saleTestProduct(10000, 5)
	svc := newTestSaleService(repo, p)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)

	// Nothing committed yet: reconcile reports no invoice, cart intact.
	invoice, err := svc.Reconcile(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, invoice)
	after, err := svc.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Len(t, after.Lines, 1)

	// Simulate a commit whose response was lost: the invoice exists under
	// the cart's submission key but the cart was never cleared.
	cart, err := svc.registry.Get(session.SessionID)
	require.NoError(t, err)
	landed := &entity.Invoice{
		ID:            uuid.New(),
		Number:        "INV-lost0001",
		SubmissionKey: cart.SubmissionKey(),
		Status:        enum.InvoiceStatusPaid,
	}
	repo.invoices[landed.ID] = landed
	repo.bySubmission[landed.SubmissionKey] = landed

	found, err := svc.Reconcile(context.Background(), session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, landed.ID, found.ID)

	// Reconcile cleared the cart, so the sale cannot be submitted twice.
	after, err = svc.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, after.Lines)
}

func TestCancelInvoiceRestocksOnce(t *testing.T) {
	repo := newFakeSaleRepo()
	p := saleTestProduct(10000, 5)
	svc := newTestSaleService(repo, p)

	session, err := svc.OpenSession(context.Background())
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), session.SessionID, p.ID)
	require.NoError(t, err)

	invoice, err := svc.Checkout(context.Background(), &CheckoutInput{
		SessionID:      session.SessionID,
		UserID:         uuid.New(),
		Method:         enum.PaymentMethodCash,
		AmountTendered: 118.00,
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 1, repo.restockCalls)

	// A second cancel is refused and never restocks again.
	_, err = svc.CancelInvoice(context.Background(), invoice.ID)
	assert.ErrorIs(t, err, pos.ErrAlreadyCancelled)
	assert.Equal(t, 1, repo.restockCalls)
}
