package request

import "github.com/marcosfp/colmado-api/internal/domain/enum"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name         string            `json:"name" binding:"required,min=2,max=255"`
	Document     string            `json:"document" binding:"required,max=50"`
	DocumentType enum.DocumentType `json:"document_type"`
	Email        *string           `json:"email" binding:"omitempty,email"`
	Phone        *string           `json:"phone" binding:"omitempty,max=30"`
	Address      *string           `json:"address"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name         *string            `json:"name" binding:"omitempty,min=2,max=255"`
	Document     *string            `json:"document" binding:"omitempty,max=50"`
	DocumentType *enum.DocumentType `json:"document_type"`
	Email        *string            `json:"email" binding:"omitempty,email"`
	Phone        *string            `json:"phone" binding:"omitempty,max=30"`
	Address      *string            `json:"address"`
}
