package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcosfp/colmado-api/internal/pos"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/response"
)

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// parseIDParam parses a UUID path parameter, writing a 400 response on
// failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// registerError maps cart and checkout errors onto HTTP responses. Business
// rejections are 422 so the register UI can show them inline; conflicts and
// stock shortages are 409.
func registerError(c *gin.Context, err error) {
	var stockErr *pos.InsufficientStockError
	switch {
	case errors.Is(err, pos.ErrSessionNotFound), errors.Is(err, pos.ErrLineNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, pos.ErrEmptyCart),
		errors.Is(err, pos.ErrInvalidQuantity),
		errors.Is(err, pos.ErrInsufficientPayment),
		errors.Is(err, pos.ErrMissingPaymentReference):
		response.ErrorWithCode(c, 422, err.Error())
	case errors.Is(err, pos.ErrSubmissionInFlight), errors.Is(err, pos.ErrAlreadyCancelled):
		response.Conflict(c, err.Error())
	case errors.As(err, &stockErr):
		response.Conflict(c, stockErr.Error())
	default:
		response.Error(c, err)
	}
}
