package pos

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/pkg/money"
)

// Cart is the working state of one register session: its lines, the selected
// customer and the selected discount. It is never persisted; a successful
// sale clears it and a failed one leaves it untouched for retry.
//
// A single operator drives one cart, so mutations are naturally serialized.
// The mutex only protects against a stray concurrent HTTP request hitting the
// same session; it is not a transactional boundary.
type Cart struct {
	mu            sync.Mutex
	id            uuid.UUID
	taxRate       float64
	lines         map[uuid.UUID]*CartLine
	order         []uuid.UUID
	customer      *entity.Customer
	discount      *entity.Discount
	submissionKey string
	submitting    bool
	touchedAt     time.Time
}

// Summary is a read snapshot of the cart with all aggregates settled.
type Summary struct {
	SessionID      uuid.UUID        `json:"session_id"`
	Lines          []CartLine       `json:"lines"`
	Customer       *entity.Customer `json:"customer,omitempty"`
	Discount       *entity.Discount `json:"discount,omitempty"`
	SubTotal       money.Cents      `json:"subtotal"`
	TaxAmount      money.Cents      `json:"tax_amount"`
	DiscountAmount money.Cents      `json:"discount_amount"`
	Total          money.Cents      `json:"total"`
}

// NewCart creates an empty cart applying the given default tax rate.
func NewCart(taxRate float64) *Cart {
	return &Cart{
		id:            uuid.New(),
		taxRate:       taxRate,
		lines:         make(map[uuid.UUID]*CartLine),
		submissionKey: uuid.New().String(),
		touchedAt:     time.Now(),
	}
}

// ID returns the session identifier.
func (c *Cart) ID() uuid.UUID {
	return c.id
}

// AddItem adds one unit of the product. If the product is already in the
// cart the quantity is incremented, capped at the product's stock (the cap is
// a silent no-op, matching register behavior where repeated scans past the
// shelf count simply stop counting).
func (c *Cart) AddItem(product *entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchedAt = time.Now()

	if existing, ok := c.lines[product.ID]; ok {
		// The cap tracks stock as observed now, not at first add.
		existing.Stock = product.Stock
		if existing.Quantity >= existing.Stock {
			return nil
		}
		existing.Quantity++
		existing.recompute()
		return nil
	}

	line, err := ComputeLine(product, 1, c.taxRate)
	if err != nil {
		return err
	}
	c.lines[product.ID] = &line
	c.order = append(c.order, product.ID)
	return nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line. Unlike AddItem's silent cap, an explicit quantity above stock is
// rejected so the operator sees why the count did not stick.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchedAt = time.Now()

	line, ok := c.lines[productID]
	if !ok {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		c.removeLocked(productID)
		return nil
	}
	if quantity > line.Stock {
		return &InsufficientStockError{Products: []string{line.Name}}
	}
	line.Quantity = quantity
	line.recompute()
	return nil
}

// RemoveItem removes a line unconditionally.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchedAt = time.Now()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID uuid.UUID) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SelectCustomer replaces the selected customer; nil clears it.
func (c *Cart) SelectCustomer(customer *entity.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchedAt = time.Now()
	c.customer = customer
}

// SelectDiscount replaces the selected discount; nil clears it. Applicability
// is evaluated lazily when totals are read, not here.
func (c *Cart) SelectDiscount(discount *entity.Discount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchedAt = time.Now()
	c.discount = discount
}

// Clear empties the cart and resets the customer and discount selections.
// A fresh submission key is issued so the next sale is deduplicated on its
// own key.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchedAt = time.Now()
	c.lines = make(map[uuid.UUID]*CartLine)
	c.order = nil
	c.customer = nil
	c.discount = nil
	c.submitting = false
	c.submissionKey = uuid.New().String()
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Summary recomputes every aggregate from the current lines. Aggregates are
// always derived read-through; nothing is cached between mutations.
func (c *Cart) Summary(now time.Time) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := c.linesLocked()
	subtotal, tax := CartAggregates(lines)
	discount := DiscountAmount(c.discount, subtotal, now)

	return Summary{
		SessionID:      c.id,
		Lines:          lines,
		Customer:       c.customer,
		Discount:       c.discount,
		SubTotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		Total:          Total(subtotal, tax, discount),
	}
}

func (c *Cart) linesLocked() []CartLine {
	lines := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, *c.lines[id])
	}
	return lines
}

// BeginSubmission marks the cart as having a sale in flight and returns the
// submission key to send, along with a snapshot of the cart. A second call
// before FinishSubmission fails, so a double-tapped checkout cannot submit
// the same cart twice.
func (c *Cart) BeginSubmission(now time.Time) (Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return Summary{}, ErrEmptyCart
	}
	if c.submitting {
		return Summary{}, ErrSubmissionInFlight
	}
	c.submitting = true

	lines := c.linesLocked()
	subtotal, tax := CartAggregates(lines)
	discount := DiscountAmount(c.discount, subtotal, now)
	return Summary{
		SessionID:      c.id,
		Lines:          lines,
		Customer:       c.customer,
		Discount:       c.discount,
		SubTotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		Total:          Total(subtotal, tax, discount),
	}, nil
}

// FinishSubmission releases the in-flight guard after a failed submission.
// On success callers use Clear, which also releases it.
func (c *Cart) FinishSubmission() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
}

// SubmissionKey returns the idempotency key for the cart's next sale.
func (c *Cart) SubmissionKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submissionKey
}

// TouchedAt returns the time of the last mutation (for session expiry).
func (c *Cart) TouchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touchedAt
}
