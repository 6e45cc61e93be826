package entity

// Receipt is the print-ready projection of an invoice. Amounts are decimals;
// the formatter owns presentation.
type Receipt struct {
	Header   ReceiptHeader `json:"header"`
	Number   string        `json:"number"`
	Date     string        `json:"date"`
	Cashier  string        `json:"cashier,omitempty"`
	Customer string        `json:"customer,omitempty"`
	Items    []ReceiptItem `json:"items"`
	SubTotal float64       `json:"subtotal"`
	Tax      float64       `json:"tax"`
	Discount float64       `json:"discount"`
	Total    float64       `json:"total"`
	Method   string        `json:"method"`
	Tendered float64       `json:"tendered"`
	Change   float64       `json:"change"`
}

// ReceiptHeader carries the store identification printed at the top
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	RNC       string `json:"rnc,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem is one printed line
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}
