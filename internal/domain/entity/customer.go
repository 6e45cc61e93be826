package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents a registered customer. Walk-in sales carry no customer.
type Customer struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Document     string            `gorm:"size:50;not null;index" json:"document"`
	DocumentType enum.DocumentType `gorm:"default:0" json:"document_type"`
	Email        *string           `gorm:"size:255" json:"email,omitempty"`
	Phone        *string           `gorm:"size:50" json:"phone,omitempty"`
	Address      *string           `gorm:"type:text" json:"address,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
