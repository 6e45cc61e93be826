package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcosfp/colmado-api/internal/application/service"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/request"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/response"
)

// TaxRateHandler handles tax rate HTTP requests
type TaxRateHandler struct {
	taxRateService *service.TaxRateService
}

// NewTaxRateHandler creates a new tax rate handler
func NewTaxRateHandler(taxRateService *service.TaxRateService) *TaxRateHandler {
	return &TaxRateHandler{taxRateService: taxRateService}
}

// List handles listing tax rates
func (h *TaxRateHandler) List(c *gin.Context) {
	rates, err := h.taxRateService.ListTaxRates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax rates retrieved successfully", rates)
}

// Create handles creating a tax rate
func (h *TaxRateHandler) Create(c *gin.Context) {
	var req request.TaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rate, err := h.taxRateService.CreateTaxRate(c.Request.Context(), &service.TaxRateInput{
		Name:      req.Name,
		Rate:      req.Rate,
		IsDefault: req.IsDefault,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Tax rate created successfully", rate)
}

// Update handles updating a tax rate
func (h *TaxRateHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.TaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rate, err := h.taxRateService.UpdateTaxRate(c.Request.Context(), id, &service.TaxRateInput{
		Name:      req.Name,
		Rate:      req.Rate,
		IsDefault: req.IsDefault,
		Active:    req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax rate updated successfully", rate)
}

// Delete handles deleting a tax rate
func (h *TaxRateHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taxRateService.DeleteTaxRate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
