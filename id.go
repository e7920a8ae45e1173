package finance

import (
	"fmt"
	"strings"
	"time"
)

// NextID derives a transaction identifier from the transaction date, its
// category, and the number of transactions already recorded in the same
// month. It is a pure function: identical inputs always produce the same id,
// which is what makes same-intent retries detectable. Callers advance seq
// only after a successful commit.
//
// Format: <year><DDMMYYYY>-<category prefix, 3 upper>-<seq, zero-padded to 4>.
func NextID(d Date, category string, seq int) string {
	prefix := strings.ToUpper(strings.TrimSpace(category))
	if prefix == "" {
		prefix = "TXN"
	}
	if r := []rune(prefix); len(r) > 3 {
		prefix = string(r[:3])
	}
	return fmt.Sprintf("%d%s-%s-%04d", d.Year(), d.Compact(), prefix, seq)
}

// SIPExpenseID derives the identifier of the expense record mirroring a fund
// contribution. It combines the date, the fund scheme code and a millisecond
// timestamp so it cannot collide with the standard scheme, and carries the
// -EXP suffix marking it as an auto-generated mirror of an investment.
func SIPExpenseID(d Date, schemeCode string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d-EXP", d.Dashed(), schemeCode, at.UnixMilli())
}

// SIPEntryID is the identifier of the investment-log entry itself, without
// the expense suffix.
func SIPEntryID(d Date, schemeCode string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", d.Dashed(), schemeCode, at.UnixMilli())
}
