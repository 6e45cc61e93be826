package request

import "github.com/marcosfp/colmado-api/internal/domain/enum"

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Name     string    `json:"name" binding:"required,min=2,max=255"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=8"`
	Role     enum.Role `json:"role"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Name   *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Role   *enum.Role `json:"role"`
	Active *bool      `json:"active"`
}
