package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcosfp/colmado-api/internal/domain/entity"
)

func sampleReceipt(method string) *entity.Receipt {
	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "Colmado Don Ramon",
			RNC:       "131-12345-6",
			Phone:     "809-555-0101",
		},
		Number: "INV-a1b2c3d4",
		Date:   "2026-09-01 14:30",
		Items: []entity.ReceiptItem{
			{Name: "Arroz Selecto 5lb", Quantity: 2, UnitPrice: 180.00, Total: 360.00},
			{Name: "Habichuela Roja", Quantity: 1, UnitPrice: 95.00, Total: 95.00},
		},
		SubTotal: 455.00,
		Tax:      81.90,
		Total:    536.90,
		Method:   method,
		Tendered: 600.00,
		Change:   63.10,
	}
}

func TestFormatReceiptContainsTotalsAndLabels(t *testing.T) {
	data := FormatReceipt(sampleReceipt("CASH"))

	for _, want := range []string{
		"Colmado Don Ramon",
		"RNC: 131-12345-6",
		"Factura:",
		"INV-a1b2c3d4",
		"Arroz Selecto 5lb",
		"Subtotal:",
		"455.00",
		"ITBIS:",
		"81.90",
		"TOTAL:",
		"536.90",
		"Recibido:",
		"Cambio:",
		"Gracias por su compra!",
	} {
		assert.True(t, bytes.Contains(data, []byte(want)), "receipt missing %q", want)
	}
}

func TestFormatReceiptDrawerKickOnlyForCash(t *testing.T) {
	kick := []byte{0x1B, 'p', 0x00, 0x19, 0xFA}

	cash := FormatReceipt(sampleReceipt("CASH"))
	assert.True(t, bytes.Contains(cash, kick))

	card := FormatReceipt(sampleReceipt("CARD"))
	assert.False(t, bytes.Contains(card, kick))
}

func TestFormatReceiptOmitsDiscountLineWhenZero(t *testing.T) {
	r := sampleReceipt("CASH")
	data := FormatReceipt(r)
	assert.False(t, bytes.Contains(data, []byte("Descuento:")))

	r.Discount = 45.50
	data = FormatReceipt(r)
	assert.True(t, bytes.Contains(data, []byte("Descuento:")))
	assert.True(t, bytes.Contains(data, []byte("-45.50")))
}
