package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Discount represents a configurable sale discount. Amount fields are stored
// in cents; Value is cents for FIXED discounts and a percentage for
// PERCENTAGE discounts.
type Discount struct {
	ID                uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name              string            `gorm:"size:255;not null" json:"name"`
	Type              enum.DiscountType `gorm:"default:0" json:"type"`
	Value             int64             `gorm:"default:0" json:"-"`
	MinPurchaseAmount *int64            `json:"-"`
	MaxDiscountAmount *int64            `json:"-"`
	StartDate         *time.Time        `gorm:"type:date" json:"start_date,omitempty"`
	EndDate           *time.Time        `gorm:"type:date" json:"end_date,omitempty"`
	Active            bool              `gorm:"default:true" json:"active"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses.
// Percentage values are stored as hundredths (e.g. 1000 for 10%) so the same
// conversion applies to both types.
func (d Discount) MarshalJSON() ([]byte, error) {
	type Alias Discount
	out := &struct {
		Alias
		Value             float64  `json:"value"`
		MinPurchaseAmount *float64 `json:"min_purchase_amount,omitempty"`
		MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
	}{
		Alias: Alias(d),
		Value: float64(d.Value) / 100,
	}
	if d.MinPurchaseAmount != nil {
		v := float64(*d.MinPurchaseAmount) / 100
		out.MinPurchaseAmount = &v
	}
	if d.MaxDiscountAmount != nil {
		v := float64(*d.MaxDiscountAmount) / 100
		out.MaxDiscountAmount = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}
