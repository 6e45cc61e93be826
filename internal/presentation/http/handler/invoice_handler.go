package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcosfp/colmado-api/internal/application/service"
	"github.com/marcosfp/colmado-api/internal/domain/enum"
	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/request"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/response"
	"github.com/marcosfp/colmado-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	saleService    *service.SaleService
	receiptService *service.ReceiptService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(saleService *service.SaleService, receiptService *service.ReceiptService) *InvoiceHandler {
	return &InvoiceHandler{saleService: saleService, receiptService: receiptService}
}

// List handles listing invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.Status != "" {
		status := parseInvoiceStatus(filter.Status)
		params.Status = &status
	}
	if filter.CustomerID != "" {
		custID, err := uuid.Parse(filter.CustomerID)
		if err == nil {
			params.CustomerID = &custID
		}
	}
	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			// End of the named day.
			end := t.AddDate(0, 0, 1).Add(-time.Second)
			params.EndDate = &end
		}
	}

	result, err := h.saleService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

func parseInvoiceStatus(s string) enum.InvoiceStatus {
	switch s {
	case "PAID":
		return enum.InvoiceStatusPaid
	case "CANCELLED":
		return enum.InvoiceStatusCancelled
	case "REFUNDED":
		return enum.InvoiceStatusRefunded
	default:
		return enum.InvoiceStatusPending
	}
}

// Get handles getting a single invoice with its items and payment
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.saleService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Cancel handles cancelling an invoice and restocking its items. Cancelling
// an already-cancelled invoice is a conflict and never restocks twice.
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.saleService.CancelInvoice(c.Request.Context(), id)
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Invoice cancelled", invoice)
}

// PrintReceipt handles printing an invoice receipt on the thermal printer.
// The formatted receipt is returned even when the printer is offline.
func (h *InvoiceHandler) PrintReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.PrintInvoiceReceipt(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.Success(c, 200, "Receipt generated; printer unavailable", receipt)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed", receipt)
}
