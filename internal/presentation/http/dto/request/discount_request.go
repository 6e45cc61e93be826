package request

import (
	"time"

	"github.com/marcosfp/colmado-api/internal/domain/enum"
)

// DiscountRequest represents a discount create or update request. Percentage
// values are whole percentages (10 means 10%), money amounts are decimals.
type DiscountRequest struct {
	Name              string            `json:"name" binding:"required,min=2,max=255"`
	Type              enum.DiscountType `json:"type"`
	Value             float64           `json:"value" binding:"required,gt=0"`
	MinPurchaseAmount *float64          `json:"min_purchase_amount" binding:"omitempty,gte=0"`
	MaxDiscountAmount *float64          `json:"max_discount_amount" binding:"omitempty,gte=0"`
	StartDate         *time.Time        `json:"start_date"`
	EndDate           *time.Time        `json:"end_date"`
	Active            bool              `json:"active"`
}

// TaxRateRequest represents a tax rate create or update request
type TaxRateRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	Rate      float64 `json:"rate" binding:"gte=0,lt=1"`
	IsDefault bool    `json:"is_default"`
	Active    bool    `json:"active"`
}
