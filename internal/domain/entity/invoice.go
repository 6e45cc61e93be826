package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a persisted sale
type Invoice struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Number         string             `gorm:"size:100;unique;not null" json:"number"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	DiscountID     *uuid.UUID         `gorm:"type:uuid;index" json:"discount_id,omitempty"`
	Status         enum.InvoiceStatus `gorm:"default:0" json:"status"`
	SubTotal       int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount      int64              `gorm:"default:0" json:"-"`
	DiscountAmount int64              `gorm:"default:0" json:"-"`
	TotalAmount    int64              `gorm:"default:0" json:"-"`
	SubmissionKey  string             `gorm:"size:255;uniqueIndex;not null" json:"submission_key"`
	IssuedAt       time.Time          `gorm:"not null" json:"issued_at"`
	CancelledAt    *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Discount *Discount     `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payment  *Payment      `gorm:"foreignKey:InvoiceID" json:"payment,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"subtotal"`
		TaxAmount      float64 `json:"tax_amount"`
		DiscountAmount float64 `json:"discount_amount"`
		TotalAmount    float64 `json:"total_amount"`
	}{
		Alias:          Alias(i),
		SubTotal:       float64(i.SubTotal) / 100,
		TaxAmount:      float64(i.TaxAmount) / 100,
		DiscountAmount: float64(i.DiscountAmount) / 100,
		TotalAmount:    float64(i.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item on an invoice
type InvoiceItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	UnitPrice      int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TaxRate        float64        `gorm:"not null" json:"tax_rate"`
	SubTotal       int64          `gorm:"not null" json:"-"`
	TaxAmount      int64          `gorm:"not null" json:"-"`
	DiscountAmount int64          `gorm:"default:0" json:"-"`
	Total          int64          `gorm:"not null" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ii InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice      float64 `json:"unit_price"`
		SubTotal       float64 `json:"subtotal"`
		TaxAmount      float64 `json:"tax_amount"`
		DiscountAmount float64 `json:"discount_amount"`
		Total          float64 `json:"total"`
	}{
		Alias:          Alias(ii),
		UnitPrice:      float64(ii.UnitPrice) / 100,
		SubTotal:       float64(ii.SubTotal) / 100,
		TaxAmount:      float64(ii.TaxAmount) / 100,
		DiscountAmount: float64(ii.DiscountAmount) / 100,
		Total:          float64(ii.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Payment represents the payment record attached to an invoice
type Payment struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID         uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"invoice_id"`
	Method            enum.PaymentMethod `gorm:"default:0" json:"method"`
	AmountTendered    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ChangeAmount      int64              `gorm:"default:0" json:"-"`
	ReferenceNumber   *string            `gorm:"size:100" json:"reference_number,omitempty"`
	AuthorizationCode *string            `gorm:"size:100" json:"authorization_code,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		AmountTendered float64 `json:"amount_tendered"`
		ChangeAmount   float64 `json:"change_amount"`
	}{
		Alias:          Alias(p),
		AmountTendered: float64(p.AmountTendered) / 100,
		ChangeAmount:   float64(p.ChangeAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
