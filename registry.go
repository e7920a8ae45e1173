package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log"
	"maps"
	"os"
	"slices"
	"time"
)

// Registry is the shared fund registry: one file per deployment, holding
// every recurring-investment instrument and its unit accounting state.
type Registry struct {
	path  string
	funds map[string]*Fund // indexed by scheme code
}

// FundDefinition is the input to fund registration.
type FundDefinition struct {
	FundName           string
	Category           string
	FundHouse          string
	NAVDay             string
	SchemeCode         string // optional; derived from the name when empty
	ContributionAmount Money  // monthly amount scheduled for the current year
}

// Contribution is the result of applying one monthly contribution.
type Contribution struct {
	SchemeCode     string
	FundName       string
	AmountApplied  Money
	NAV            Money
	UnitsPurchased Units
	NewTotalUnits  Units
}

// LoadRegistry reads the registry file, returning an empty registry if the
// file does not exist yet.
func LoadRegistry(path string) (*Registry, error) {
	r := &Registry{path: path, funds: make(map[string]*Fund)}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read fund registry %q: %v", ErrStoreUnavailable, path, err)
	}
	var raw struct {
		Info map[string]*Fund `json:"info"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not decode fund registry %q: %w", path, err)
	}
	if raw.Info != nil {
		r.funds = raw.Info
	}
	return r, nil
}

// Save persists the registry with an atomic replace, so readers never observe
// a partially written file.
func (r *Registry) Save() error {
	var w jsonObjectWriter
	w.Append("info", r.funds)
	data, err := w.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode fund registry: %w", err)
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("%w: could not write fund registry %q: %v", ErrCommitFailed, r.path, err)
	}
	return nil
}

// Get returns the fund registered under this scheme code, or nil if unknown.
func (r *Registry) Get(schemeCode string) *Fund {
	return r.funds[schemeCode]
}

// restore puts back a previously cloned fund state, or removes the entry when
// the prior state was nil. It is the in-memory rollback half of a failed
// two-file commit.
func (r *Registry) restore(schemeCode string, prior *Fund) {
	if prior == nil {
		delete(r.funds, schemeCode)
		return
	}
	r.funds[schemeCode] = prior
}

// Funds iterates over registered funds in scheme-code order.
func (r *Registry) Funds() iter.Seq[*Fund] {
	return func(yield func(*Fund) bool) {
		codes := slices.Collect(maps.Keys(r.funds))
		slices.Sort(codes)
		for _, code := range codes {
			if !yield(r.funds[code]) {
				return
			}
		}
	}
}

// Register adds a new fund. The scheme code is taken from the definition or
// derived from the fund name; either way a collision is rejected, never
// overwritten.
func (r *Registry) Register(def FundDefinition, today Date, at time.Time) (*Fund, error) {
	if def.FundName == "" {
		return nil, fmt.Errorf("%w: fund name", ErrMissingField)
	}
	if !def.ContributionAmount.IsPositive() {
		return nil, fmt.Errorf("%w: contribution amount %s", ErrInvalidAmount, def.ContributionAmount)
	}
	code := def.SchemeCode
	if code == "" {
		code = DeriveSchemeCode(def.FundName, at)
	}
	if _, exists := r.funds[code]; exists {
		return nil, fmt.Errorf("%w: scheme code %q", ErrDuplicateFund, code)
	}
	navDay := def.NAVDay
	if navDay == "" {
		navDay = "10"
	}
	fund := &Fund{
		SchemeCode: code,
		FundName:   def.FundName,
		FundHouse:  def.FundHouse,
		Category:   def.Category,
		NAVDay:     navDay,
		StartDate:  today,
		Schedule:   map[int]Money{today.Year(): def.ContributionAmount},
		NAV:        make(map[int]map[time.Month]Money),
	}
	r.funds[code] = fund
	log.Printf("%v: registered fund %q under %s", today, fund.FundName, code)
	return fund, nil
}

// Apply converts the scheduled contribution of the current year into units at
// the submitted NAV and accumulates them on the fund. A month accepts only
// one contribution: a NAV already recorded for the month means the purchase
// was applied, and re-running it is rejected rather than silently recomputed.
// Use CorrectNAV to fix a wrongly submitted NAV.
func (r *Registry) Apply(schemeCode string, nav Money, today Date) (Contribution, error) {
	fund := r.funds[schemeCode]
	if fund == nil {
		return Contribution{}, fmt.Errorf("%w: scheme code %q", ErrFundNotFound, schemeCode)
	}
	if !nav.IsPositive() {
		return Contribution{}, fmt.Errorf("%w: got %s", ErrInvalidNAV, nav)
	}
	amount, ok := fund.ScheduledAmount(today.Year())
	if !ok {
		return Contribution{}, fmt.Errorf("%w: fund %q, year %d", ErrNoScheduledAmount, schemeCode, today.Year())
	}
	month := MonthOf(today)
	if prior, exists := fund.NAVFor(month); exists {
		return Contribution{}, fmt.Errorf("%w: fund %q already has nav %s for %s", ErrSameMonthContribution, schemeCode, prior, month)
	}

	units := amount.DivPrice(nav).Round()
	fund.TotalUnits = fund.TotalUnits.Add(units).Round()
	fund.recordNAV(month, nav)
	log.Printf("%v: sip %s bought %s units at nav %s, total %s", today, schemeCode, units, nav, fund.TotalUnits)

	return Contribution{
		SchemeCode:     fund.SchemeCode,
		FundName:       fund.FundName,
		AmountApplied:  amount,
		NAV:            nav,
		UnitsPurchased: units,
		NewTotalUnits:  fund.TotalUnits,
	}, nil
}

// CorrectNAV overwrites the NAV recorded for a month without touching units.
// It is the explicit correction path for a wrong same-month NAV; it refuses
// to invent a contribution for a month that never had one.
func (r *Registry) CorrectNAV(schemeCode string, month Month, nav Money) error {
	fund := r.funds[schemeCode]
	if fund == nil {
		return fmt.Errorf("%w: scheme code %q", ErrFundNotFound, schemeCode)
	}
	if !nav.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidNAV, nav)
	}
	prior, exists := fund.NAVFor(month)
	if !exists {
		return fmt.Errorf("%w: fund %q has no contribution for %s", ErrFundNotFound, schemeCode, month)
	}
	fund.recordNAV(month, nav)
	log.Printf("correct-nav %s: %s nav %s replaced with %s", schemeCode, month, prior, nav)
	return nil
}
