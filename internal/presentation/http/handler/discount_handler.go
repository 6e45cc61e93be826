package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcosfp/colmado-api/internal/application/service"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/request"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/response"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// DiscountHandler handles discount-related HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

func discountInput(req *request.DiscountRequest) *service.DiscountInput {
	return &service.DiscountInput{
		Name:              req.Name,
		Type:              req.Type,
		Value:             req.Value,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Active:            req.Active,
	}
}

// List handles listing discounts
func (h *DiscountHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	activeOnly := c.Query("active") == "true"
	result, err := h.discountService.ListDiscounts(c.Request.Context(), &params, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Discounts retrieved successfully", result)
}

// Get handles getting a single discount
func (h *DiscountHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	discount, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount retrieved successfully", discount)
}

// Create handles creating a discount
func (h *DiscountHandler) Create(c *gin.Context) {
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), discountInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Discount created successfully", discount)
}

// Update handles updating a discount
func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discount, err := h.discountService.UpdateDiscount(c.Request.Context(), id, discountInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated successfully", discount)
}

// Delete handles deleting a discount
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
