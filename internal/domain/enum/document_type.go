package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentType represents the kind of identity document a customer presents
type DocumentType int

const (
	DocumentTypeCedula   DocumentType = 0
	DocumentTypeRNC      DocumentType = 1
	DocumentTypePassport DocumentType = 2
)

func (d DocumentType) String() string {
	names := [...]string{"CEDULA", "RNC", "PASSPORT"}
	if int(d) < 0 || int(d) >= len(names) {
		return "CEDULA"
	}
	return names[d]
}

func (d DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DocumentType(i)
		return nil
	}
	switch str {
	case "CEDULA":
		*d = DocumentTypeCedula
	case "RNC":
		*d = DocumentTypeRNC
	case "PASSPORT":
		*d = DocumentTypePassport
	}
	return nil
}

func (d DocumentType) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *DocumentType) Scan(value interface{}) error {
	if value == nil {
		*d = DocumentTypeCedula
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = DocumentType(v)
	case int:
		*d = DocumentType(v)
	}
	return nil
}
