package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxRate represents a configured tax, e.g. the 18% ITBIS. Exactly one rate
// is flagged as the default applied to products without an explicit rate.
type TaxRate struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;unique;not null" json:"name"`
	Rate      float64        `gorm:"not null" json:"rate"` // fraction, e.g. 0.18
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax rate
func (t *TaxRate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "tax_rates"
}
