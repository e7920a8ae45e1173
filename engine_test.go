package finance

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestRecordFirstCredit(t *testing.T) {
	b := newTestBooks(t, testClock)
	rec := mustRecord(t, b, "harsh", Input{Amount: M(100), Kind: "credit", Category: "income", Description: "salary"})

	if !rec.BalanceAfter.Equal(M(100)) {
		t.Errorf("balanceAfter = %s, want 100", rec.BalanceAfter)
	}
	if rec.Kind != Credit {
		t.Errorf("kind = %q, want credit", rec.Kind)
	}
	if want := "202514092025-INC-0000"; rec.ID != want {
		t.Errorf("id = %q, want %q", rec.ID, want)
	}
}

func TestRecordRunningBalance(t *testing.T) {
	b := newTestBooks(t, testClock)
	mustRecord(t, b, "harsh", Input{Amount: M(100), Kind: "credit", Category: "income"})
	rec := mustRecord(t, b, "harsh", Input{Amount: M(40), Kind: "debit", Category: "expense", Description: "groceries"})

	if !rec.BalanceAfter.Equal(M(60)) {
		t.Errorf("balanceAfter = %s, want 60", rec.BalanceAfter)
	}
	if !strings.HasSuffix(rec.ID, "-0001") {
		t.Errorf("second record id = %q, want sequence 0001", rec.ID)
	}

	sum, err := b.Summary("harsh")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if !sum.Balance.Equal(M(60)) {
		t.Errorf("summary balance = %s, want 60", sum.Balance)
	}
	if !sum.MonthData.Expenses.Equal(M(40)) {
		t.Errorf("month expenses = %s, want 40", sum.MonthData.Expenses)
	}
	if !sum.MonthData.Income.Equal(M(100)) {
		t.Errorf("month income = %s, want 100", sum.MonthData.Income)
	}
}

func TestRecordValidation(t *testing.T) {
	b := newTestBooks(t, testClock)
	if _, err := b.Record("", Input{Amount: M(10)}); !errors.Is(err, ErrMissingField) {
		t.Errorf("Record() without user = %v, want ErrMissingField", err)
	}
	if _, err := b.Record("harsh", Input{Amount: M(0)}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Record() with zero amount = %v, want ErrInvalidAmount", err)
	}
	if _, err := b.Record("harsh", Input{Amount: M(-5)}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Record() with negative amount = %v, want ErrInvalidAmount", err)
	}
	if _, err := b.Record("harsh", Input{Amount: M(10), Kind: "transfer"}); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Record() with unknown kind = %v, want ErrInvalidKind", err)
	}
	records, err := b.History("harsh", MonthOf(NewDate(2025, time.September, 14)))
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("rejected inputs left %d records in the ledger", len(records))
	}
}

func TestRecordDefaultsToDebit(t *testing.T) {
	b := newTestBooks(t, testClock)
	rec := mustRecord(t, b, "harsh", Input{Amount: M(25), Category: "expense"})
	if rec.Kind != Debit {
		t.Errorf("kind = %q, want debit", rec.Kind)
	}
	if !rec.BalanceAfter.Equal(M(-25)) {
		t.Errorf("balanceAfter = %s, want -25", rec.BalanceAfter)
	}
}

func TestBalanceCarriesAcrossMonths(t *testing.T) {
	b := newTestBooks(t, testClock)
	mustRecord(t, b, "harsh", Input{Amount: M(100), Kind: "credit", Category: "income"})

	// Move the clock into the next month; the sequence restarts but the
	// balance continues from the snapshot.
	b.Now = func() time.Time { return testClock.AddDate(0, 1, 0) }
	rec := mustRecord(t, b, "harsh", Input{Amount: M(30), Kind: "debit", Category: "expense"})
	if !rec.BalanceAfter.Equal(M(70)) {
		t.Errorf("balanceAfter = %s, want 70", rec.BalanceAfter)
	}
	if !strings.HasSuffix(rec.ID, "-0000") {
		t.Errorf("first record of the month id = %q, want sequence 0000", rec.ID)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	b := newTestBooks(t, testClock)
	mustRecord(t, b, "harsh", Input{Amount: M(100), Kind: "credit", Category: "income"})
	mustRecord(t, b, "guest", Input{Amount: M(7), Kind: "debit", Category: "expense"})

	sum, err := b.Summary("harsh")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if !sum.Balance.Equal(M(100)) {
		t.Errorf("harsh balance = %s, want 100", sum.Balance)
	}
	sum, err = b.Summary("guest")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if !sum.Balance.Equal(M(-7)) {
		t.Errorf("guest balance = %s, want -7", sum.Balance)
	}
}

func TestStatePersistsAcrossOpen(t *testing.T) {
	root := t.TempDir()
	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	b.Now = func() time.Time { return testClock }
	mustRecord(t, b, "harsh", Input{Amount: M(100), Kind: "credit", Category: "income"})

	reopened, err := Open(root)
	if err != nil {
		t.Fatalf("Open() after restart failed: %v", err)
	}
	reopened.Now = func() time.Time { return testClock }
	sum, err := reopened.Summary("harsh")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if !sum.Balance.Equal(M(100)) {
		t.Errorf("balance after reopen = %s, want 100", sum.Balance)
	}
}

func TestApplySIP(t *testing.T) {
	b := newTestBooks(t, testClock)
	registerTestFund(t, b, "PARAGP-123")

	contrib, err := b.ApplySIP("harsh", "PARAGP-123", M(20))
	if err != nil {
		t.Fatalf("ApplySIP() failed: %v", err)
	}
	if got := contrib.UnitsPurchased.String(); got != "50.0000" {
		t.Errorf("units purchased = %s, want 50.0000", got)
	}
	if got := contrib.NewTotalUnits.String(); got != "50.0000" {
		t.Errorf("total units = %s, want 50.0000", got)
	}

	// The contribution is mirrored into the ledger as an investment debit.
	records, err := b.History("harsh", NewMonth(2025, time.September))
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ledger has %d records, want the single mirror", len(records))
	}
	mirror := records[0]
	if !strings.HasSuffix(mirror.ID, "-EXP") {
		t.Errorf("mirror id = %q, want the -EXP suffix", mirror.ID)
	}
	if mirror.Kind != Debit || !mirror.Amount.Equal(M(1000)) {
		t.Errorf("mirror = %s %s, want debit 1000", mirror.Kind, mirror.Amount)
	}
	if !mirror.BalanceAfter.Equal(M(-1000)) {
		t.Errorf("mirror balanceAfter = %s, want -1000", mirror.BalanceAfter)
	}

	sum, err := b.Summary("harsh")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if !sum.MonthData.Investments.Equal(M(1000)) {
		t.Errorf("month investments = %s, want 1000", sum.MonthData.Investments)
	}

	entries, err := b.Contributions("harsh", 2025)
	if err != nil {
		t.Fatalf("Contributions() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("sip log has %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.SchemeCode != "PARAGP-123" || entry.TotalUnits.String() != "50.0000" {
		t.Errorf("sip entry = %+v", entry)
	}
	if !entry.Value.Equal(M(1000)) {
		t.Errorf("sip entry value = %s, want 1000", entry.Value)
	}
}

func TestApplySIPSameMonthRejected(t *testing.T) {
	b := newTestBooks(t, testClock)
	registerTestFund(t, b, "PARAGP-123")

	if _, err := b.ApplySIP("harsh", "PARAGP-123", M(20)); err != nil {
		t.Fatalf("ApplySIP() failed: %v", err)
	}
	_, err := b.ApplySIP("harsh", "PARAGP-123", M(21))
	if !errors.Is(err, ErrSameMonthContribution) {
		t.Fatalf("second ApplySIP() = %v, want ErrSameMonthContribution", err)
	}
	records, err := b.History("harsh", NewMonth(2025, time.September))
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("rejected sip added ledger records, have %d want 1", len(records))
	}
}

func TestApplySIPNextMonth(t *testing.T) {
	b := newTestBooks(t, testClock)
	registerTestFund(t, b, "PARAGP-123")

	if _, err := b.ApplySIP("harsh", "PARAGP-123", M(20)); err != nil {
		t.Fatalf("ApplySIP() failed: %v", err)
	}
	b.Now = func() time.Time { return testClock.AddDate(0, 1, 0) }
	contrib, err := b.ApplySIP("harsh", "PARAGP-123", M(25))
	if err != nil {
		t.Fatalf("ApplySIP() next month failed: %v", err)
	}
	if got := contrib.NewTotalUnits.String(); got != "90.0000" {
		t.Errorf("total units = %s, want 90.0000", got)
	}
	sum, err := b.Summary("harsh")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if !sum.Balance.Equal(M(-2000)) {
		t.Errorf("balance after two contributions = %s, want -2000", sum.Balance)
	}
}

func TestApplySIPUnknownFund(t *testing.T) {
	b := newTestBooks(t, testClock)
	_, err := b.ApplySIP("harsh", "UNKNOWN-000", M(20))
	if !errors.Is(err, ErrFundNotFound) {
		t.Fatalf("ApplySIP() = %v, want ErrFundNotFound", err)
	}
	records, err := b.History("harsh", NewMonth(2025, time.September))
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("failed sip left %d ledger records", len(records))
	}
}

func TestCorrectNAVThroughEngine(t *testing.T) {
	b := newTestBooks(t, testClock)
	registerTestFund(t, b, "PARAGP-123")
	month := NewMonth(2025, time.September)

	if _, err := b.ApplySIP("harsh", "PARAGP-123", M(20)); err != nil {
		t.Fatalf("ApplySIP() failed: %v", err)
	}
	if err := b.CorrectNAV("PARAGP-123", month, M(21)); err != nil {
		t.Fatalf("CorrectNAV() failed: %v", err)
	}
	fund := b.Registry().Get("PARAGP-123")
	nav, ok := fund.NAVFor(month)
	if !ok || !nav.Equal(M(21)) {
		t.Errorf("nav after correction = %s, want 21", nav)
	}
	if got := fund.TotalUnits.String(); got != "50.0000" {
		t.Errorf("total units after correction = %s, want 50.0000", got)
	}
}

func TestConcurrentContributionsAcrossFunds(t *testing.T) {
	root := t.TempDir()
	b, err := Open(root)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	b.Now = func() time.Time { return testClock }

	codes := []string{"ALPHA-001", "BRAVO-002", "CHARLI-003", "DELTA-004"}
	for _, code := range codes {
		registerTestFund(t, b, code)
	}

	var g errgroup.Group
	for i, code := range codes {
		user := fmt.Sprintf("user%d", i)
		g.Go(func() error {
			_, err := b.ApplySIP(user, code, M(20))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent ApplySIP() failed: %v", err)
	}

	reopened, err := Open(root)
	if err != nil {
		t.Fatalf("Open() after contributions failed: %v", err)
	}
	month := NewMonth(2025, time.September)
	for _, code := range codes {
		fund := reopened.Registry().Get(code)
		if fund == nil {
			t.Fatalf("fund %s missing after reload", code)
		}
		if got := fund.TotalUnits.String(); got != "50.0000" {
			t.Errorf("%s total units = %s, want 50.0000", code, got)
		}
		if _, ok := fund.NAVFor(month); !ok {
			t.Errorf("%s has no nav for %s", code, month)
		}
	}
}
