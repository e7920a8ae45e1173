package finance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// schemeCodePrefixLen is the number of leading name characters kept when
// deriving a scheme code from a fund name.
const schemeCodePrefixLen = 6

// Fund is one recurring-investment instrument in the shared registry.
// It is mutated only by the contribution and correction operations, always
// as a read-modify-write of the whole registry file.
type Fund struct {
	SchemeCode string
	FundName   string
	FundHouse  string
	Category   string // scheme category, e.g. "Mid Cap"
	NAVDay     string // day of month the NAV is usually sampled
	StartDate  Date
	TotalUnits Units
	Schedule   map[int]Money                // year -> monthly contribution amount
	NAV        map[int]map[time.Month]Money // year -> month -> accepted NAV
}

// ScheduledAmount returns the contribution amount configured for a year.
func (f *Fund) ScheduledAmount(year int) (Money, bool) {
	amount, ok := f.Schedule[year]
	if !ok || !amount.IsPositive() {
		return Money{}, false
	}
	return amount, true
}

// NAVFor returns the NAV recorded for a given month, if any.
func (f *Fund) NAVFor(m Month) (Money, bool) {
	months, ok := f.NAV[m.Year()]
	if !ok {
		return Money{}, false
	}
	nav, ok := months[m.Month()]
	return nav, ok
}

// recordNAV stores the NAV accepted for a month, overwriting any prior value.
func (f *Fund) recordNAV(m Month, nav Money) {
	if f.NAV == nil {
		f.NAV = make(map[int]map[time.Month]Money)
	}
	if f.NAV[m.Year()] == nil {
		f.NAV[m.Year()] = make(map[time.Month]Money)
	}
	f.NAV[m.Year()][m.Month()] = nav
}

// clone returns a deep copy of the fund, nil for a nil fund. Used to roll
// back an in-memory mutation when the paired ledger commit fails.
func (f *Fund) clone() *Fund {
	if f == nil {
		return nil
	}
	c := *f
	c.Schedule = make(map[int]Money, len(f.Schedule))
	for year, amount := range f.Schedule {
		c.Schedule[year] = amount
	}
	c.NAV = make(map[int]map[time.Month]Money, len(f.NAV))
	for year, months := range f.NAV {
		c.NAV[year] = make(map[time.Month]Money, len(months))
		for month, nav := range months {
			c.NAV[year][month] = nav
		}
	}
	return &c
}

// DeriveSchemeCode builds a scheme code from a fund name: the uppercase
// alphabetic characters of the name, truncated to a fixed prefix, suffixed
// with the low-order digits of a millisecond timestamp. This is a best-effort
// uniqueness heuristic; registration still rejects collisions.
func DeriveSchemeCode(fundName string, at time.Time) string {
	var letters strings.Builder
	for _, r := range fundName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters.WriteRune(r)
		}
	}
	prefix := strings.ToUpper(letters.String())
	if len(prefix) > schemeCodePrefixLen {
		prefix = prefix[:schemeCodePrefixLen]
	}
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	return prefix + "-" + millis[len(millis)-3:]
}

// The persisted layout mirrors the original registry file: snake_case keys,
// the schedule as {"2025":{"amount":1000}}, the NAV history as
// {"2025":{"9":117.2}}.

type fundJSON struct {
	SchemeCode string                      `json:"scheme_code"`
	StartDate  Date                        `json:"start_date,omitempty"`
	FundHouse  string                      `json:"fund_house,omitempty"`
	FundName   string                      `json:"fund_name"`
	Category   string                      `json:"scheme_category,omitempty"`
	NAVDay     string                      `json:"nav_day,omitempty"`
	TotalUnits Units                       `json:"total_units"`
	Schedule   map[string]scheduledAmount  `json:"amount,omitempty"`
	NAV        map[string]map[string]Money `json:"nav"`
}

type scheduledAmount struct {
	Amount Money `json:"amount"`
}

// MarshalJSON implements the json.Marshaler interface.
func (f Fund) MarshalJSON() ([]byte, error) {
	out := fundJSON{
		SchemeCode: f.SchemeCode,
		StartDate:  f.StartDate,
		FundHouse:  f.FundHouse,
		FundName:   f.FundName,
		Category:   f.Category,
		NAVDay:     f.NAVDay,
		TotalUnits: f.TotalUnits,
		Schedule:   make(map[string]scheduledAmount, len(f.Schedule)),
		NAV:        make(map[string]map[string]Money, len(f.NAV)),
	}
	for year, amount := range f.Schedule {
		out.Schedule[strconv.Itoa(year)] = scheduledAmount{Amount: amount}
	}
	for year, months := range f.NAV {
		yearKey := strconv.Itoa(year)
		out.NAV[yearKey] = make(map[string]Money, len(months))
		for month, nav := range months {
			out.NAV[yearKey][strconv.Itoa(int(month))] = nav.exact()
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *Fund) UnmarshalJSON(data []byte) error {
	var raw fundJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.SchemeCode = raw.SchemeCode
	f.StartDate = raw.StartDate
	f.FundHouse = raw.FundHouse
	f.FundName = raw.FundName
	f.Category = raw.Category
	f.NAVDay = raw.NAVDay
	f.TotalUnits = raw.TotalUnits
	f.Schedule = make(map[int]Money, len(raw.Schedule))
	for yearStr, sched := range raw.Schedule {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return fmt.Errorf("invalid schedule year %q: %w", yearStr, err)
		}
		f.Schedule[year] = sched.Amount
	}
	f.NAV = make(map[int]map[time.Month]Money, len(raw.NAV))
	for yearStr, months := range raw.NAV {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return fmt.Errorf("invalid nav year %q: %w", yearStr, err)
		}
		f.NAV[year] = make(map[time.Month]Money, len(months))
		for monthStr, nav := range months {
			month, err := strconv.Atoi(monthStr)
			if err != nil {
				return fmt.Errorf("invalid nav month %q: %w", monthStr, err)
			}
			f.NAV[year][time.Month(month)] = nav
		}
	}
	return nil
}
