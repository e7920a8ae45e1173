package finance

import (
	"testing"
	"time"
)

// testClock is a fixed instant used where ids or months must be deterministic.
var testClock = time.Date(2025, time.September, 14, 10, 30, 0, 0, time.UTC)

// newTestBooks creates an engine over a temp directory with a fixed clock.
func newTestBooks(t *testing.T, at time.Time) *Books {
	t.Helper()
	books, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	books.Now = func() time.Time { return at }
	return books
}

// mustRecord records a transaction and fails the test on error.
func mustRecord(t *testing.T, b *Books, user string, in Input) Record {
	t.Helper()
	rec, err := b.Record(user, in)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	return rec
}

// registerTestFund registers a fund with a fixed scheme code and a monthly
// contribution of 1000 scheduled for the clock's year.
func registerTestFund(t *testing.T, b *Books, code string) *Fund {
	t.Helper()
	fund, err := b.RegisterFund(FundDefinition{
		FundName:           "Parag Parikh Flexi Cap",
		Category:           "Flexi Cap",
		FundHouse:          "PPFAS",
		SchemeCode:         code,
		ContributionAmount: M(1000),
	})
	if err != nil {
		t.Fatalf("RegisterFund() failed: %v", err)
	}
	return fund
}
