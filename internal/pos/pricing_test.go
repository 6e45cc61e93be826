package pos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itbis = 0.18

func testProduct(price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:      uuid.New(),
		Name:    "Cafe Santo Domingo 1lb",
		Barcode: "7460135000012",
		Price:   price,
		Stock:   stock,
		Active:  true,
	}
}

func TestComputeLine(t *testing.T) {
	p := testProduct(10000, 5) // 100.00

	line, err := ComputeLine(p, 2, itbis)
	require.NoError(t, err)

	assert.Equal(t, money.Cents(20000), line.SubTotal)
	assert.Equal(t, money.Cents(3600), line.TaxAmount)
	assert.Equal(t, money.Cents(23600), line.Total)
	assert.Equal(t, money.Cents(0), line.DiscountAmount)
}

func TestComputeLineQuantityBounds(t *testing.T) {
	p := testProduct(10000, 3)

	_, err := ComputeLine(p, 0, itbis)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeLine(p, -1, itbis)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeLine(p, 4, itbis)
	var stockErr *InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Contains(t, stockErr.Products, p.Name)

	_, err = ComputeLine(p, 3, itbis)
	assert.NoError(t, err)
}

func TestComputeLineProductTaxRateOverride(t *testing.T) {
	exempt := 0.0
	p := testProduct(10000, 5)
	p.TaxRate = &exempt

	line, err := ComputeLine(p, 1, itbis)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(0), line.TaxAmount)
	assert.Equal(t, money.Cents(10000), line.Total)
}

func TestCartAggregatesIdempotent(t *testing.T) {
	p1 := testProduct(10000, 10)
	p2 := testProduct(1999, 10)

	l1, err := ComputeLine(p1, 2, itbis)
	require.NoError(t, err)
	l2, err := ComputeLine(p2, 3, itbis)
	require.NoError(t, err)

	lines := []CartLine{l1, l2}
	sub1, tax1 := CartAggregates(lines)
	sub2, tax2 := CartAggregates(lines)

	assert.Equal(t, sub1, sub2)
	assert.Equal(t, tax1, tax2)

	// Recomputing every line leaves the aggregates unchanged: no drift.
	for i := range lines {
		lines[i].recompute()
	}
	sub3, tax3 := CartAggregates(lines)
	assert.Equal(t, sub1, sub3)
	assert.Equal(t, tax1, tax3)
}

func percentageDiscount(value int64) *entity.Discount {
	return &entity.Discount{
		ID:     uuid.New(),
		Name:   "Promo",
		Type:   enum.DiscountTypePercentage,
		Value:  value,
		Active: true,
	}
}

func fixedDiscount(cents int64) *entity.Discount {
	return &entity.Discount{
		ID:     uuid.New(),
		Name:   "Promo",
		Type:   enum.DiscountTypeFixed,
		Value:  cents,
		Active: true,
	}
}

func TestDiscountAmountPercentage(t *testing.T) {
	// 10% of 200.00 is 20.00 (of the subtotal, not the taxed total)
	d := percentageDiscount(1000)
	assert.Equal(t, money.Cents(2000), DiscountAmount(d, 20000, time.Now()))
}

func TestDiscountAmountFixedClamped(t *testing.T) {
	d := fixedDiscount(5000)
	cap := int64(3000)
	d.MaxDiscountAmount = &cap
	assert.Equal(t, money.Cents(3000), DiscountAmount(d, 20000, time.Now()))
}

func TestDiscountAmountZeroCapNullifies(t *testing.T) {
	d := percentageDiscount(1000)
	cap := int64(0)
	d.MaxDiscountAmount = &cap
	assert.Equal(t, money.Cents(0), DiscountAmount(d, 20000, time.Now()))
}

func TestDiscountAmountInactive(t *testing.T) {
	d := percentageDiscount(1000)
	d.Active = false
	assert.Equal(t, money.Cents(0), DiscountAmount(d, 20000, time.Now()))
	assert.Equal(t, money.Cents(0), DiscountAmount(nil, 20000, time.Now()))
}

func TestDiscountAmountDateWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	d := percentageDiscount(1000)
	d.StartDate = &start
	d.EndDate = &end

	assert.Equal(t, money.Cents(2000), DiscountAmount(d, 20000, now))

	// The end date is inclusive through its last instant.
	lastDay := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, money.Cents(2000), DiscountAmount(d, 20000, lastDay))

	before := time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, money.Cents(0), DiscountAmount(d, 20000, before))

	after := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, money.Cents(0), DiscountAmount(d, 20000, after))
}

func TestDiscountAmountMinPurchase(t *testing.T) {
	d := percentageDiscount(1000)
	min := int64(50000)
	d.MinPurchaseAmount = &min

	assert.Equal(t, money.Cents(0), DiscountAmount(d, 20000, time.Now()))
	assert.Equal(t, money.Cents(5000), DiscountAmount(d, 50000, time.Now()))
}

func TestDiscountAmountNoMinAppliesToZeroSubtotal(t *testing.T) {
	d := percentageDiscount(1000)
	assert.Equal(t, money.Cents(0), DiscountAmount(d, 0, time.Now()))

	f := fixedDiscount(500)
	assert.Equal(t, money.Cents(500), DiscountAmount(f, 0, time.Now()))
}

func TestTotal(t *testing.T) {
	assert.Equal(t, money.Cents(21600), Total(20000, 3600, 2000))
	assert.Equal(t, money.Cents(20600), Total(20000, 3600, 3000))
	// A discount can never push the total below zero.
	assert.Equal(t, money.Cents(0), Total(100, 18, 500))
}
