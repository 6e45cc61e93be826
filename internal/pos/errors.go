package pos

import (
	"errors"
	"fmt"
)

// Errors surfaced by the cart and checkout flow. Handlers map these onto the
// HTTP error taxonomy; none of them leave a cart in a partially-mutated state.
var (
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInsufficientPayment     = errors.New("amount tendered is less than the total")
	ErrMissingPaymentReference = errors.New("reference number and authorization code are required")
	ErrSessionNotFound         = errors.New("register session not found")
	ErrLineNotFound            = errors.New("product is not in the cart")
	ErrSubmissionInFlight      = errors.New("a sale submission is already in progress")
	ErrAlreadyCancelled        = errors.New("invoice is already cancelled")
)

// InsufficientStockError reports products whose stock cannot cover the
// requested quantity. It surfaces both on cart edits (single product) and on
// sale submission when the backend check-and-decrement rejects lines.
type InsufficientStockError struct {
	Products []string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for: %v", e.Products)
}
