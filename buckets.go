package finance

import "strings"

// Bucket identifies one of the fixed monthly accumulators. Every transaction
// maps to exactly one bucket, so the buckets always partition total flow.
type Bucket string

const (
	Expenses          Bucket = "expenses"
	HomeEssentials    Bucket = "home_essentials"
	Investments       Bucket = "investments"
	Lend              Bucket = "lend"
	Savings           Bucket = "savings"
	Income            Bucket = "income"
	UntrackedCashflow Bucket = "untracked_cashflow"
)

// categoryBuckets maps a normalized transaction category to its bucket.
// "health" landing in investments is inherited from the original record
// format and kept for compatibility with existing snapshots.
var categoryBuckets = map[string]Bucket{
	"expense":         Expenses,
	"home essentials": HomeEssentials,
	"health":          Investments,
	"investment":      Investments,
	"lend":            Lend,
	"savings":         Savings,
	"income":          Income,
}

// BucketOf maps a free-form category to its bucket. The mapping is total:
// unknown or absent categories fall into UntrackedCashflow.
func BucketOf(category string) Bucket {
	if b, ok := categoryBuckets[strings.ToLower(strings.TrimSpace(category))]; ok {
		return b
	}
	return UntrackedCashflow
}

// MonthAggregate holds the running totals of one (year, month) bucket set.
// Totals only grow; a new month starts a fresh zero-valued aggregate.
type MonthAggregate struct {
	Expenses          Money `json:"expenses"`
	HomeEssentials    Money `json:"home_essentials"`
	Investments       Money `json:"investments"`
	Lend              Money `json:"lend"`
	Savings           Money `json:"savings"`
	Income            Money `json:"income"`
	UntrackedCashflow Money `json:"untracked_cashflow"`
}

// Add accumulates an amount into the given bucket and returns the result.
func (a MonthAggregate) Add(b Bucket, amount Money) MonthAggregate {
	switch b {
	case Expenses:
		a.Expenses = a.Expenses.Add(amount)
	case HomeEssentials:
		a.HomeEssentials = a.HomeEssentials.Add(amount)
	case Investments:
		a.Investments = a.Investments.Add(amount)
	case Lend:
		a.Lend = a.Lend.Add(amount)
	case Savings:
		a.Savings = a.Savings.Add(amount)
	case Income:
		a.Income = a.Income.Add(amount)
	default:
		a.UntrackedCashflow = a.UntrackedCashflow.Add(amount)
	}
	return a
}

// Get returns the current total of the given bucket.
func (a MonthAggregate) Get(b Bucket) Money {
	switch b {
	case Expenses:
		return a.Expenses
	case HomeEssentials:
		return a.HomeEssentials
	case Investments:
		return a.Investments
	case Lend:
		return a.Lend
	case Savings:
		return a.Savings
	case Income:
		return a.Income
	default:
		return a.UntrackedCashflow
	}
}
