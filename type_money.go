package finance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultCurrency is the currency assumed for every ledger amount.
// The record keeper is single-currency; the code exists for display only.
const DefaultCurrency = "INR"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value in the ledger currency.
type Money struct {
	value      decimal.Decimal
	fractional bool // true to persist in full digits
}

// M creates a Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the full go-money currency for the ledger.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency.
	return *money.New(0, DefaultCurrency).Currency()
}

// String returns the plain decimal representation, as persisted.
func (m Money) String() string { return m.value.String() }

// Display returns the human formatted representation (e.g. "₹1,000.00").
func (m Money) Display() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(u Units) Money            { return Money{value: m.value.Mul(u.value)} }

// DivPrice converts an amount into units at the given per-unit price.
func (m Money) DivPrice(nav Money) Units { return Units{value: m.value.Div(nav.value)} }

// exact returns a copy of the money that will be persisted with all the
// digits. Per-unit prices carry more decimals than the currency fraction.
func (m Money) exact() Money {
	m.fractional = true
	return m
}

// MarshalJSON implements the json.Marshaler interface. Amounts are persisted
// as plain numbers rounded to the currency fraction, except fractional
// values which keep all their digits.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.fractional {
		return m.value.MarshalJSON()
	}
	return m.value.Round(int32(m.currency().Fraction)).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
