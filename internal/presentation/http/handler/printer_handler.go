package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcosfp/colmado-api/internal/application/service"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles thermal printer HTTP requests
type PrinterHandler struct {
	receiptService *service.ReceiptService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(receiptService *service.ReceiptService) *PrinterHandler {
	return &PrinterHandler{receiptService: receiptService}
}

// Status reports printer connectivity
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.receiptService.GetStatus())
}

// Test prints a short test receipt
func (h *PrinterHandler) Test(c *gin.Context) {
	receipt, err := h.receiptService.TestPrint()
	if err != nil {
		response.ErrorWithCode(c, 503, "Printer unavailable: "+err.Error())
		return
	}
	response.OK(c, "Test receipt printed", receipt)
}
