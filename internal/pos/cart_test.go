package pos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemIncrementsAndCapsAtStock(t *testing.T) {
	cart := NewCart(itbis)
	p := testProduct(10000, 2)

	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))

	s := cart.Summary(time.Now())
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 2, s.Lines[0].Quantity)

	// A third scan past the shelf count is a silent no-op.
	require.NoError(t, cart.AddItem(p))
	s = cart.Summary(time.Now())
	assert.Equal(t, 2, s.Lines[0].Quantity)
	assert.Equal(t, money.Cents(20000), s.SubTotal)
}

func TestCartAddItemRejectsOutOfStock(t *testing.T) {
	cart := NewCart(itbis)
	p := testProduct(10000, 0)

	err := cart.AddItem(p)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, cart.IsEmpty())
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCart(itbis)
	p := testProduct(5000, 10)
	require.NoError(t, cart.AddItem(p))

	require.NoError(t, cart.UpdateQuantity(p.ID, 4))
	s := cart.Summary(time.Now())
	assert.Equal(t, 4, s.Lines[0].Quantity)
	assert.Equal(t, money.Cents(20000), s.SubTotal)

	err := cart.UpdateQuantity(p.ID, 11)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	// A rejected update leaves the previous quantity in place.
	assert.Equal(t, 4, cart.Summary(time.Now()).Lines[0].Quantity)

	assert.ErrorIs(t, cart.UpdateQuantity(uuid.New(), 1), ErrLineNotFound)
}

func TestCartUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart(itbis)
	p := testProduct(5000, 10)
	require.NoError(t, cart.AddItem(p))

	require.NoError(t, cart.UpdateQuantity(p.ID, 0))
	assert.True(t, cart.IsEmpty())

	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.UpdateQuantity(p.ID, -3))
	assert.True(t, cart.IsEmpty())
}

func TestCartPreservesDisplayOrder(t *testing.T) {
	cart := NewCart(itbis)
	first := testProduct(100, 10)
	second := testProduct(200, 10)
	second.Name = "Azucar Crema 5lb"
	third := testProduct(300, 10)
	third.Name = "Habichuelas 1lb"

	require.NoError(t, cart.AddItem(first))
	require.NoError(t, cart.AddItem(second))
	require.NoError(t, cart.AddItem(third))
	// Re-scanning an earlier product must not move its line.
	require.NoError(t, cart.AddItem(first))

	s := cart.Summary(time.Now())
	require.Len(t, s.Lines, 3)
	assert.Equal(t, first.ID, s.Lines[0].ProductID)
	assert.Equal(t, second.ID, s.Lines[1].ProductID)
	assert.Equal(t, third.ID, s.Lines[2].ProductID)

	cart.RemoveItem(second.ID)
	s = cart.Summary(time.Now())
	require.Len(t, s.Lines, 2)
	assert.Equal(t, first.ID, s.Lines[0].ProductID)
	assert.Equal(t, third.ID, s.Lines[1].ProductID)
}

func TestCartSummaryTotalInvariant(t *testing.T) {
	cart := NewCart(itbis)
	p1 := testProduct(10000, 10)
	p2 := testProduct(1999, 10)
	require.NoError(t, cart.AddItem(p1))
	require.NoError(t, cart.AddItem(p1))
	require.NoError(t, cart.AddItem(p2))

	cart.SelectDiscount(percentageDiscount(1000))

	s := cart.Summary(time.Now())
	assert.Equal(t, s.Total, s.SubTotal+s.TaxAmount-s.DiscountAmount)

	// The worked example: 2 x 100.00 at 18% with a 10% discount.
	only := NewCart(itbis)
	require.NoError(t, only.AddItem(p1))
	require.NoError(t, only.AddItem(p1))
	only.SelectDiscount(percentageDiscount(1000))
	ws := only.Summary(time.Now())
	assert.Equal(t, money.Cents(20000), ws.SubTotal)
	assert.Equal(t, money.Cents(3600), ws.TaxAmount)
	assert.Equal(t, money.Cents(2000), ws.DiscountAmount)
	assert.Equal(t, money.Cents(21600), ws.Total)
}

func TestCartAddItemCapTracksCurrentStock(t *testing.T) {
	cart := NewCart(itbis)
	p := testProduct(10000, 1)

	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))
	s := cart.Summary(time.Now())
	assert.Equal(t, 1, s.Lines[0].Quantity)

	// A restock between scans raises the ceiling.
	p.Stock = 3
	require.NoError(t, cart.AddItem(p))
	s = cart.Summary(time.Now())
	assert.Equal(t, 2, s.Lines[0].Quantity)

	// A sale elsewhere lowers it; the scan is a silent no-op again.
	p.Stock = 2
	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))
	s = cart.Summary(time.Now())
	assert.Equal(t, 2, s.Lines[0].Quantity)
}

func TestCartSummaryMarshalsDecimalAmounts(t *testing.T) {
	cart := NewCart(itbis)
	p := testProduct(10000, 10)
	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))

	data, err := json.Marshal(cart.Summary(time.Now()))
	require.NoError(t, err)

	// Amounts serialize as decimals, the same shape the invoices expose.
	for _, want := range []string{
		`"unit_price":100.00`,
		`"subtotal":200.00`,
		`"tax_amount":36.00`,
		`"total":236.00`,
	} {
		assert.Contains(t, string(data), want)
	}
}

func TestCartDiscountRecheckedOnEachSummary(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	d := percentageDiscount(1000)
	d.StartDate = &start
	d.EndDate = &end

	cart := NewCart(itbis)
	p := testProduct(10000, 10)
	require.NoError(t, cart.AddItem(p))
	cart.SelectDiscount(d)

	inside := cart.Summary(time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, money.Cents(1000), inside.DiscountAmount)

	outside := cart.Summary(time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, money.Cents(0), outside.DiscountAmount)
	assert.Equal(t, money.Cents(11800), outside.Total)
}

func TestCartClearResetsEverything(t *testing.T) {
	cart := NewCart(itbis)
	p := testProduct(10000, 10)
	require.NoError(t, cart.AddItem(p))
	cart.SelectCustomer(&entity.Customer{ID: uuid.New(), Name: "Juana Perez", DocumentType: enum.DocumentTypeCedula})
	cart.SelectDiscount(percentageDiscount(500))
	keyBefore := cart.SubmissionKey()

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	s := cart.Summary(time.Now())
	assert.Nil(t, s.Customer)
	assert.Nil(t, s.Discount)
	assert.Equal(t, money.Cents(0), s.Total)
	// Each sale gets a fresh submission key.
	assert.NotEqual(t, keyBefore, cart.SubmissionKey())
}

func TestCartBeginSubmission(t *testing.T) {
	cart := NewCart(itbis)

	_, err := cart.BeginSubmission(time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)

	p := testProduct(10000, 10)
	require.NoError(t, cart.AddItem(p))

	s, err := cart.BeginSubmission(time.Now())
	require.NoError(t, err)
	assert.Equal(t, money.Cents(11800), s.Total)

	// A second submit while the first is in flight is refused.
	_, err = cart.BeginSubmission(time.Now())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	// A failed attempt releases the guard and leaves the cart intact,
	// keeping the same submission key for the retry.
	keyBefore := cart.SubmissionKey()
	cart.FinishSubmission()
	again, err := cart.BeginSubmission(time.Now())
	require.NoError(t, err)
	assert.Equal(t, s.Total, again.Total)
	assert.Equal(t, keyBefore, cart.SubmissionKey())
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry(time.Hour, time.Hour)

	cart := reg.Open(itbis)
	got, err := reg.Get(cart.ID())
	require.NoError(t, err)
	assert.Same(t, cart, got)
	assert.Equal(t, 1, reg.Count())

	reg.Close(cart.ID())
	_, err = reg.Get(cart.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistrySweepExpiresIdleSessions(t *testing.T) {
	reg := NewRegistry(30*time.Minute, time.Hour)
	cart := reg.Open(itbis)

	reg.sweep(cart.TouchedAt().Add(10 * time.Minute))
	_, err := reg.Get(cart.ID())
	require.NoError(t, err)

	reg.sweep(cart.TouchedAt().Add(45 * time.Minute))
	_, err = reg.Get(cart.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
