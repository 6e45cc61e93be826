package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcosfp/colmado-api/internal/application/service"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/request"
	"github.com/marcosfp/colmado-api/internal/presentation/http/dto/response"
)

// POSHandler handles register session and checkout HTTP requests
type POSHandler struct {
	saleService *service.SaleService
}

// NewPOSHandler creates a new POS handler
func NewPOSHandler(saleService *service.SaleService) *POSHandler {
	return &POSHandler{saleService: saleService}
}

// OpenSession opens a new register session
func (h *POSHandler) OpenSession(c *gin.Context) {
	summary, err := h.saleService.OpenSession(c.Request.Context())
	if err != nil {
		registerError(c, err)
		return
	}
	response.Created(c, "Session opened", summary)
}

// GetSession returns the session's cart snapshot
func (h *POSHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.saleService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Session retrieved", summary)
}

// CloseSession discards a session and its cart
func (h *POSHandler) CloseSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.saleService.CloseSession(c.Request.Context(), sessionID)
	response.NoContent(c)
}

// AddItem adds one unit of a product to the cart, by ID or scanned barcode
func (h *POSHandler) AddItem(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.ProductID == nil && (req.Barcode == nil || *req.Barcode == "") {
		response.BadRequest(c, "Either product_id or barcode is required")
		return
	}

	var (
		summary interface{}
		err     error
	)
	if req.ProductID != nil {
		summary, err = h.saleService.AddItem(c.Request.Context(), sessionID, *req.ProductID)
	} else {
		summary, err = h.saleService.AddItemByBarcode(c.Request.Context(), sessionID, *req.Barcode)
	}
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Item added", summary)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (h *POSHandler) UpdateQuantity(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.saleService.UpdateQuantity(c.Request.Context(), sessionID, productID, req.Quantity)
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Quantity updated", summary)
}

// RemoveItem removes a line from the cart
func (h *POSHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	summary, err := h.saleService.RemoveItem(c.Request.Context(), sessionID, productID)
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Item removed", summary)
}

// SelectCustomer attaches a customer to the session; a null ID detaches
func (h *POSHandler) SelectCustomer(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.saleService.SelectCustomer(c.Request.Context(), sessionID, req.CustomerID)
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Customer updated", summary)
}

// SelectDiscount attaches a discount to the session; a null ID detaches
func (h *POSHandler) SelectDiscount(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.SelectDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.saleService.SelectDiscount(c.Request.Context(), sessionID, req.DiscountID)
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Discount updated", summary)
}

// ListApplicableDiscounts lists discounts that currently apply to the cart
func (h *POSHandler) ListApplicableDiscounts(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	discounts, err := h.saleService.ListApplicableDiscounts(c.Request.Context(), sessionID)
	if err != nil {
		registerError(c, err)
		return
	}
	response.OK(c, "Discounts retrieved", discounts)
}

// Checkout submits the cart as a sale. On success the cart is cleared and
// the persisted invoice returned; on any failure the cart is left intact.
func (h *POSHandler) Checkout(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.saleService.Checkout(c.Request.Context(), &service.CheckoutInput{
		SessionID:         sessionID,
		UserID:            *userID,
		Method:            req.Method,
		AmountTendered:    req.AmountTendered,
		ReferenceNumber:   req.ReferenceNumber,
		AuthorizationCode: req.AuthorizationCode,
	})
	if err != nil {
		registerError(c, err)
		return
	}
	response.Created(c, "Sale completed", invoice)
}

// Reconcile resolves a checkout whose response was lost. Returns the invoice
// if the sale committed, or 404 if nothing was recorded and the cart is safe
// to resubmit.
func (h *POSHandler) Reconcile(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.saleService.Reconcile(c.Request.Context(), sessionID)
	if err != nil {
		registerError(c, err)
		return
	}
	if invoice == nil {
		response.NotFound(c, "No sale recorded for this submission; cart is intact")
		return
	}
	response.OK(c, "Sale reconciled", invoice)
}
