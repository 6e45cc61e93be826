package request

import (
	"github.com/google/uuid"

	"github.com/marcosfp/colmado-api/internal/domain/enum"
)

// AddItemRequest adds one unit of a product to a register session. Either
// the product ID or a scanned barcode identifies the product.
type AddItemRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	Barcode   *string    `json:"barcode"`
}

// UpdateQuantityRequest sets the quantity of a cart line. Zero or a negative
// quantity removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SelectCustomerRequest attaches a customer to the session. A null ID
// detaches the current customer.
type SelectCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// SelectDiscountRequest attaches a discount to the session. A null ID
// detaches the current discount.
type SelectDiscountRequest struct {
	DiscountID *uuid.UUID `json:"discount_id"`
}

// CheckoutRequest submits the session's cart as a sale
type CheckoutRequest struct {
	Method            enum.PaymentMethod `json:"method"`
	AmountTendered    float64            `json:"amount_tendered" binding:"gte=0"`
	ReferenceNumber   *string            `json:"reference_number"`
	AuthorizationCode *string            `json:"authorization_code"`
}

// InvoiceFilterRequest represents invoice listing filters
type InvoiceFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
