package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// Role represents a user's role in the system
type Role int

const (
	RoleCashier Role = 0
	RoleAdmin   Role = 1
)

func (r Role) String() string {
	names := [...]string{"cashier", "admin"}
	if int(r) < 0 || int(r) >= len(names) {
		return "cashier"
	}
	return names[r]
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = Role(i)
		return nil
	}
	switch str {
	case "cashier":
		*r = RoleCashier
	case "admin":
		*r = RoleAdmin
	}
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleCashier
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = Role(v)
	case int:
		*r = Role(v)
	}
	return nil
}
