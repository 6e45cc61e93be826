package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromDecimal(t *testing.T) {
	assert.Equal(t, Cents(10000), FromDecimal(100.00))
	assert.Equal(t, Cents(1999), FromDecimal(19.99))
	assert.Equal(t, Cents(1), FromDecimal(0.005))
	assert.Equal(t, Cents(0), FromDecimal(0))
	assert.Equal(t, Cents(-1050), FromDecimal(-10.50))
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, c := range []Cents{0, 1, 99, 100, 12345, 999999} {
		assert.Equal(t, c, FromDecimal(c.Decimal()))
	}
}

func TestApplyRate(t *testing.T) {
	// 18% ITBIS on 200.00 is exactly 36.00
	assert.Equal(t, Cents(3600), Cents(20000).ApplyRate(0.18))
	// 18% of 0.05 rounds 0.009 to 0.01
	assert.Equal(t, Cents(1), Cents(5).ApplyRate(0.18))
	assert.Equal(t, Cents(0), Cents(0).ApplyRate(0.18))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, Cents(2000), Cents(20000).Percent(10))
	assert.Equal(t, Cents(20000), Cents(20000).Percent(100))
	assert.Equal(t, Cents(0), Cents(20000).Percent(0))
	// 3% of 0.33 rounds 0.0099 to 0.01
	assert.Equal(t, Cents(1), Cents(33).Percent(3))
}

func TestString(t *testing.T) {
	assert.Equal(t, "236.00", Cents(23600).String())
	assert.Equal(t, "0.05", Cents(5).String())
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, Cents(1), Min(1, 2))
	assert.Equal(t, Cents(2), Max(1, 2))
}

func TestJSONDecimalRepresentation(t *testing.T) {
	data, err := json.Marshal(Cents(11800))
	assert.NoError(t, err)
	assert.Equal(t, "118.00", string(data))

	data, err = json.Marshal(Cents(5))
	assert.NoError(t, err)
	assert.Equal(t, "0.05", string(data))

	data, err = json.Marshal(Cents(0))
	assert.NoError(t, err)
	assert.Equal(t, "0.00", string(data))

	var c Cents
	assert.NoError(t, json.Unmarshal([]byte("99.99"), &c))
	assert.Equal(t, Cents(9999), c)

	assert.NoError(t, json.Unmarshal([]byte("118"), &c))
	assert.Equal(t, Cents(11800), c)
}
