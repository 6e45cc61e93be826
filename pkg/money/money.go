package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Cents is a monetary amount in integer cents. All arithmetic on Cents is
// exact; conversions from decimal values round half away from zero, so every
// intermediate amount is already settled to two decimal places.
type Cents int64

// FromDecimal converts a decimal currency amount to cents.
func FromDecimal(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Decimal returns the amount as a decimal value (for API responses).
func (c Cents) Decimal() float64 {
	return float64(c) / 100
}

// String formats the amount with two decimal places.
func (c Cents) String() string {
	return fmt.Sprintf("%.2f", c.Decimal())
}

// MarshalJSON emits the amount as a two-decimal number, the same
// representation the persisted entities expose.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Decimal(), 'f', 2, 64)), nil
}

// UnmarshalJSON accepts a decimal amount and stores it as cents.
func (c *Cents) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return err
	}
	*c = FromDecimal(amount)
	return nil
}

// MulInt multiplies the amount by an integer quantity.
func (c Cents) MulInt(n int) Cents {
	return c * Cents(n)
}

// ApplyRate returns the amount scaled by rate (e.g. 0.18 for 18% ITBIS),
// rounded to cents.
func (c Cents) ApplyRate(rate float64) Cents {
	return Cents(math.Round(float64(c) * rate))
}

// Percent returns p percent of the amount, rounded to cents.
func (c Cents) Percent(p float64) Cents {
	return Cents(math.Round(float64(c) * p / 100))
}

// Min returns the smaller of two amounts.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}
