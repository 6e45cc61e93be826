package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/marcosfp/colmado-api/internal/domain/entity"
	"github.com/marcosfp/colmado-api/internal/domain/repository"
	"github.com/marcosfp/colmado-api/pkg/apperror"
	"github.com/marcosfp/colmado-api/pkg/printer"
)

// StoreInfo is the identification block printed on every receipt.
type StoreInfo struct {
	Name    string
	RNC     string
	Address string
	Phone   string
}

// ReceiptService handles receipt formatting and thermal printing.
type ReceiptService struct {
	printer     printer.Printer
	saleRepo    repository.SaleRepository
	store       StoreInfo
	printerType string
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(p printer.Printer, saleRepo repository.SaleRepository, store StoreInfo, printerType string) *ReceiptService {
	return &ReceiptService{
		printer:     p,
		saleRepo:    saleRepo,
		store:       store,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *ReceiptService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
			Phone:     "809-000-0000",
		},
		Number: "TEST-001",
		Date:   "Test Date",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal: 20.00,
		Tax:      3.60,
		Total:    23.60,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintInvoiceReceipt fetches an invoice (with details) and prints its receipt.
func (s *ReceiptService) PrintInvoiceReceipt(ctx context.Context, invoiceID uuid.UUID) (*entity.Receipt, error) {
	invoice, err := s.saleRepo.GetWithDetails(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	receipt := s.buildReceipt(invoice)

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (invoice %s): %v", invoiceID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

func (s *ReceiptService) buildReceipt(invoice *entity.Invoice) *entity.Receipt {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.store.Name,
			RNC:       s.store.RNC,
			Address:   s.store.Address,
			Phone:     s.store.Phone,
		},
		Number:   invoice.Number,
		Date:     invoice.IssuedAt.Format("2006-01-02 15:04"),
		SubTotal: float64(invoice.SubTotal) / 100,
		Tax:      float64(invoice.TaxAmount) / 100,
		Discount: float64(invoice.DiscountAmount) / 100,
		Total:    float64(invoice.TotalAmount) / 100,
	}

	if invoice.Customer != nil {
		receipt.Customer = invoice.Customer.Name
	}
	if invoice.Payment != nil {
		receipt.Method = invoice.Payment.Method.String()
		receipt.Tendered = float64(invoice.Payment.AmountTendered) / 100
		receipt.Change = float64(invoice.Payment.ChangeAmount) / 100
	}

	for _, item := range invoice.Items {
		name := item.Product.Name
		if name == "" {
			name = "Producto"
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
		})
	}

	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.RNC != "" {
		doc.TextF("RNC: %s", r.Header.RNC)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.KeyValue("Factura:", r.Number).
		KeyValue("Fecha:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cajero:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Cliente:", r.Customer)
	}
	if r.Method != "" {
		doc.KeyValue("Pago:", r.Method)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f c/u", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.Tax > 0 {
		doc.KeyValue("ITBIS:", fmt.Sprintf("%.2f", r.Tax))
	}
	if r.Discount > 0 {
		doc.KeyValue("Descuento:", fmt.Sprintf("-%.2f", r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	if r.Tendered > 0 {
		doc.KeyValue("Recibido:", fmt.Sprintf("%.2f", r.Tendered))
	}
	if r.Change > 0 {
		doc.KeyValue("Cambio:", fmt.Sprintf("%.2f", r.Change))
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Gracias por su compra!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	// Pop the drawer for cash sales so the cashier can make change.
	if r.Method == "CASH" {
		doc.OpenDrawer()
	}

	return doc.Bytes()
}
