package finance

import "github.com/shopspring/decimal"

// UnitPrecision is the number of decimal places fund units are rounded to.
// Rounding after every contribution bounds floating-point drift across
// repeated purchases.
const UnitPrecision = 4

// Units represents a quantity of fund units.
type Units struct {
	value decimal.Decimal
}

// U creates a Units from any numeric value.
func U[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Units {
	return Units{value: newDecimal(value)}
}

func (u Units) Equal(v Units) bool       { return u.value.Equal(v.value) }
func (u Units) LessThan(v Units) bool    { return u.value.LessThan(v.value) }
func (u Units) GreaterThan(v Units) bool { return u.value.GreaterThan(v.value) }
func (u Units) IsZero() bool             { return u.value.IsZero() }
func (u Units) IsNegative() bool         { return u.value.IsNegative() }
func (u Units) Add(v Units) Units        { return Units{value: u.value.Add(v.value)} }

// Round returns the units rounded to UnitPrecision places.
func (u Units) Round() Units { return Units{value: u.value.Round(UnitPrecision)} }

// String returns the decimal representation with UnitPrecision places (e.g. "50.0000").
func (u Units) String() string { return u.value.StringFixed(UnitPrecision) }

// MarshalJSON implements the json.Marshaler interface.
func (u Units) MarshalJSON() ([]byte, error) { return u.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Units) UnmarshalJSON(data []byte) error { return u.value.UnmarshalJSON(data) }
