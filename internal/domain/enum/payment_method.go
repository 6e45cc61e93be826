package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodCard     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodCredit   PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"CASH", "CARD", "TRANSFER", "CREDIT"}
	if int(m) < 0 || int(m) >= len(names) {
		return "CASH"
	}
	return names[m]
}

// RequiresReference reports whether the method needs a reference number and
// authorization code (card and bank transfer payments).
func (m PaymentMethod) RequiresReference() bool {
	return m == PaymentMethodCard || m == PaymentMethodTransfer
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "CASH":
		*m = PaymentMethodCash
	case "CARD":
		*m = PaymentMethodCard
	case "TRANSFER":
		*m = PaymentMethodTransfer
	case "CREDIT":
		*m = PaymentMethodCredit
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
