package finance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date as ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Compact formats the date as DDMMYYYY, the layout used inside transaction identifiers.
func (d Date) Compact() string { return d.time().Format("02012006") }

// Dashed formats the date as DD-MM-YYYY, the layout used in SIP identifiers.
func (d Date) Dashed() string { return d.time().Format("02-01-2006") }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// ParseDate parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func ParseDate(str string) (Date, error) {
	t, err := time.Parse(readDateFormat, strings.TrimSpace(str))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", str, err)
	}
	return NewDate(t.Date()), nil
}

// MustParseDate parses a Date from a string and panics on error. For tests and constants.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON implements the json.Marshaler interface. The zero date is
// marshaled as the empty string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month is the (year, month) bucket used to partition ledger logs and aggregates.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	d := NewDate(year, month, 1)
	return Month{y: d.Year(), m: d.Month()}
}

// MonthOf returns the Month containing the given date.
func MonthOf(d Date) Month { return Month{y: d.y, m: d.m} }

// ThisMonth returns the current Month.
func ThisMonth() Month { return MonthOf(Today()) }

// Year returns the year of the month.
func (p Month) Year() int { return p.y }

// Month returns the month of the year.
func (p Month) Month() time.Month { return p.m }

// String formats the month as "2006-01". It is also the key used in log file names.
func (p Month) String() string {
	return fmt.Sprintf("%04d-%02d", p.y, int(p.m))
}

// IsZero returns true if the month is the zero value.
func (p Month) IsZero() bool { return p.y == 0 && p.m == 0 }

// Before reports whether p is strictly before x.
func (p Month) Before(x Month) bool {
	return p.y < x.y || (p.y == x.y && p.m < x.m)
}

// Next returns the month immediately after p.
func (p Month) Next() Month { return NewMonth(p.y, p.m+1) }

// Contains reports whether the date d falls inside the month.
func (p Month) Contains(d Date) bool { return d.y == p.y && d.m == p.m }

// ParseMonth parses a Month from a "2006-01" string (single-digit month accepted).
func ParseMonth(str string) (Month, error) {
	t, err := time.Parse("2006-1", strings.TrimSpace(str))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", str, err)
	}
	return Month{y: t.Year(), m: t.Month()}, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (p Month) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
