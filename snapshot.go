package finance

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"
)

// AccountSnapshot is the compact per-user state derived from the ledger: the
// current balance, the savings pot, and the per-month category aggregates.
// It is owned by the engine and mutated only through a commit; the month logs
// remain the source of truth and can rebuild it at any time (see Rebuild).
type AccountSnapshot struct {
	Balance Money
	Savings Money
	track   map[Month]MonthAggregate
}

// NewAccountSnapshot returns a zero-valued snapshot, the state of a user
// before their first transaction.
func NewAccountSnapshot() *AccountSnapshot {
	return &AccountSnapshot{track: make(map[Month]MonthAggregate)}
}

// Aggregate returns the aggregate for a month, zero-valued if the month has
// no transactions yet.
func (s *AccountSnapshot) Aggregate(m Month) MonthAggregate {
	return s.track[m]
}

// Months returns the tracked months in chronological order.
func (s *AccountSnapshot) Months() []Month {
	months := slices.Collect(maps.Keys(s.track))
	slices.SortFunc(months, func(a, b Month) int {
		if a.Before(b) {
			return -1
		}
		if b.Before(a) {
			return 1
		}
		return 0
	})
	return months
}

// Bump accumulates an amount into the bucket of the given month.
func (s *AccountSnapshot) Bump(m Month, b Bucket, amount Money) {
	if s.track == nil {
		s.track = make(map[Month]MonthAggregate)
	}
	s.track[m] = s.track[m].Add(b, amount)
}

// Apply folds one record into the snapshot: the balance takes the record's
// balance-after, and the record's bucket grows by its amount.
func (s *AccountSnapshot) Apply(r Record) {
	s.Balance = r.BalanceAfter
	s.Bump(MonthOf(r.Date), BucketOf(r.Category), r.Amount)
}

// Equal reports whether two snapshots carry the same state.
func (s *AccountSnapshot) Equal(o *AccountSnapshot) bool {
	if !s.Balance.Equal(o.Balance) || !s.Savings.Equal(o.Savings) {
		return false
	}
	if len(s.track) != len(o.track) {
		return false
	}
	for m, agg := range s.track {
		other := o.track[m]
		for _, b := range []Bucket{Expenses, HomeEssentials, Investments, Lend, Savings, Income, UntrackedCashflow} {
			if !agg.Get(b).Equal(other.Get(b)) {
				return false
			}
		}
	}
	return true
}

// Rebuild recomputes a snapshot from scratch by replaying month logs in
// chronological order. This is the verification and repair path; steady-state
// updates go through Apply.
func Rebuild(logs map[Month][]Record) *AccountSnapshot {
	snap := NewAccountSnapshot()
	months := slices.Collect(maps.Keys(logs))
	slices.SortFunc(months, func(a, b Month) int {
		if a.Before(b) {
			return -1
		}
		if b.Before(a) {
			return 1
		}
		return 0
	})
	balance := M(0)
	for _, m := range months {
		for _, r := range logs[m] {
			balance = balance.Add(r.Kind.Signed(r.Amount))
			snap.Bump(m, BucketOf(r.Category), r.Amount)
		}
	}
	snap.Balance = balance
	return snap
}

// The persisted layout mirrors the original balance file:
// {"info":{"balance":0,"savings":0},"track":{"2025":{"9":{...buckets}}}}.

type snapshotInfo struct {
	Balance Money `json:"balance"`
	Savings Money `json:"savings"`
}

// MarshalJSON implements the json.Marshaler interface. Map keys are sorted by
// json.Marshal, so the file is canonical for a given state.
func (s *AccountSnapshot) MarshalJSON() ([]byte, error) {
	track := make(map[string]map[string]MonthAggregate, len(s.track))
	for m, agg := range s.track {
		year := strconv.Itoa(m.Year())
		if track[year] == nil {
			track[year] = make(map[string]MonthAggregate)
		}
		track[year][strconv.Itoa(int(m.Month()))] = agg
	}
	var w jsonObjectWriter
	w.Append("info", snapshotInfo{Balance: s.Balance, Savings: s.Savings})
	w.Append("track", track)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *AccountSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Info  snapshotInfo                         `json:"info"`
		Track map[string]map[string]MonthAggregate `json:"track"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Balance = raw.Info.Balance
	s.Savings = raw.Info.Savings
	s.track = make(map[Month]MonthAggregate, len(raw.Track))
	for yearStr, months := range raw.Track {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return fmt.Errorf("invalid track year %q: %w", yearStr, err)
		}
		for monthStr, agg := range months {
			month, err := strconv.Atoi(monthStr)
			if err != nil {
				return fmt.Errorf("invalid track month %q: %w", monthStr, err)
			}
			s.track[NewMonth(year, time.Month(month))] = agg
		}
	}
	return nil
}
