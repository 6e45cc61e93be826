package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/pkg/money"
)

// CartLine is one product entry in a register session. The unit price is
// captured when the product is first added and never changes for the life of
// the line, even if the catalog price moves. Subtotal, tax and total are each
// settled to cents independently so recomputing a line is idempotent.
type CartLine struct {
	ProductID      uuid.UUID   `json:"product_id"`
	Name           string      `json:"name"`
	Barcode        string      `json:"barcode"`
	Stock          int         `json:"stock"`
	Quantity       int         `json:"quantity"`
	UnitPrice      money.Cents `json:"unit_price"`
	TaxRate        float64     `json:"tax_rate"`
	SubTotal       money.Cents `json:"subtotal"`
	TaxAmount      money.Cents `json:"tax_amount"`
	DiscountAmount money.Cents `json:"discount_amount"` // reserved, always 0 for now
	Total          money.Cents `json:"total"`
}

// ComputeLine builds a cart line for a product at the given quantity.
// Quantity must be between 1 and the product's stock as observed now.
func ComputeLine(product *entity.Product, quantity int, taxRate float64) (CartLine, error) {
	if quantity < 1 {
		return CartLine{}, ErrInvalidQuantity
	}
	if quantity > product.Stock {
		return CartLine{}, &InsufficientStockError{Products: []string{product.Name}}
	}

	line := CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Barcode:   product.Barcode,
		Stock:     product.Stock,
		Quantity:  quantity,
		UnitPrice: money.Cents(product.Price),
		TaxRate:   taxRate,
	}
	if product.TaxRate != nil {
		line.TaxRate = *product.TaxRate
	}
	line.recompute()
	return line, nil
}

// recompute settles the line's amounts at its current quantity. Each amount
// is rounded to cents on its own rather than derived from the others.
func (l *CartLine) recompute() {
	l.SubTotal = l.UnitPrice.MulInt(l.Quantity)
	l.TaxAmount = l.SubTotal.ApplyRate(l.TaxRate)
	l.Total = l.SubTotal + l.TaxAmount - l.DiscountAmount
}

// CartAggregates sums the already-settled per-line amounts.
func CartAggregates(lines []CartLine) (subtotal, tax money.Cents) {
	for _, l := range lines {
		subtotal += l.SubTotal
		tax += l.TaxAmount
	}
	return subtotal, tax
}

// DiscountAmount computes the cents a discount takes off the given subtotal
// at the given time. Inapplicable discounts (inactive, outside their date
// window, or below their minimum purchase) contribute 0. The result is
// clamped to the discount's maximum amount when one is set; a zero maximum
// nullifies the discount entirely.
func DiscountAmount(d *entity.Discount, subtotal money.Cents, now time.Time) money.Cents {
	if d == nil || !d.Active {
		return 0
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return 0
	}
	if d.EndDate != nil {
		// The end date is inclusive: the discount holds through its last day.
		if !now.Before(d.EndDate.AddDate(0, 0, 1)) {
			return 0
		}
	}
	if d.MinPurchaseAmount != nil && subtotal < money.Cents(*d.MinPurchaseAmount) {
		return 0
	}

	var amount money.Cents
	switch d.Type {
	case enum.DiscountTypePercentage:
		// Value is stored in hundredths: 1000 means 10%.
		amount = subtotal.Percent(float64(d.Value) / 100)
	case enum.DiscountTypeFixed:
		amount = money.Cents(d.Value)
	}
	if amount < 0 {
		return 0
	}
	if d.MaxDiscountAmount != nil && amount > money.Cents(*d.MaxDiscountAmount) {
		amount = money.Cents(*d.MaxDiscountAmount)
	}
	return amount
}

// Total computes the document total. A discount can never push the total
// below zero.
func Total(subtotal, tax, discount money.Cents) money.Cents {
	total := subtotal + tax - discount
	if total < 0 {
		return 0
	}
	return total
}
