package finance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind discriminates the two directions of cash flow in a ledger.
type Kind string

const (
	Credit Kind = "credit"
	Debit  Kind = "debit"
)

// ParseKind parses a transaction kind. It is case-insensitive and, like the
// original record format, treats an empty string as a debit.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit":
		return Credit, nil
	case "debit", "":
		return Debit, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidKind, s)
	}
}

// Signed returns the amount with the sign implied by the kind: positive for
// a credit, negative for a debit.
func (k Kind) Signed(amount Money) Money {
	if k == Credit {
		return amount
	}
	return amount.Neg()
}

// Record is a single immutable ledger entry. Once appended it is never edited
// or deleted; corrections are new records.
type Record struct {
	ID            string `json:"id"`
	Date          Date   `json:"date"`
	Category      string `json:"category,omitempty"`
	Description   string `json:"description,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Amount        Money  `json:"amount"`
	Kind          Kind   `json:"kind"`
	BalanceAfter  Money  `json:"balanceAfter"`
	Notes         string `json:"notes,omitempty"`
	LoanID        string `json:"loanId,omitempty"`
	PocketMoney   bool   `json:"pocketMoney,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface. Keys are written in a
// fixed order so that log lines are canonical and diff-friendly.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("date", r.Date)
	w.Optional("category", r.Category)
	w.Optional("description", r.Description)
	w.Optional("paymentMethod", r.PaymentMethod)
	w.Append("amount", r.Amount)
	w.Append("kind", r.Kind)
	w.Append("balanceAfter", r.BalanceAfter)
	w.Optional("notes", r.Notes)
	w.Optional("loanId", r.LoanID)
	w.Optional("pocketMoney", r.PocketMoney)
	return w.MarshalJSON()
}

// SIPEntry is one line of the per-year investment log: the audit trail of a
// recurring contribution, alongside the mirrored expense in the month log.
type SIPEntry struct {
	ID         string `json:"id"`
	Date       Date   `json:"date"`
	SchemeCode string `json:"schemeCode"`
	FundName   string `json:"fundName"`
	Category   string `json:"category,omitempty"`
	Amount     Money  `json:"amount"`
	Units      Units  `json:"units"`
	TotalUnits Units  `json:"totalUnits"`
	NAV        Money  `json:"nav"`
	Value      Money  `json:"value"` // TotalUnits * NAV at contribution time
}

// MarshalJSON implements the json.Marshaler interface with canonical key order.
func (e SIPEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.ID)
	w.Append("date", e.Date)
	w.Append("schemeCode", e.SchemeCode)
	w.Append("fundName", e.FundName)
	w.Optional("category", e.Category)
	w.Append("amount", e.Amount)
	w.Append("units", e.Units)
	w.Append("totalUnits", e.TotalUnits)
	w.Append("nav", e.NAV.exact())
	w.Append("value", e.Value.exact())
	return w.MarshalJSON()
}

// EncodeRecord marshals a single record to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeRecord(w io.Writer, r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %w", r.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record %q: %w", r.ID, err)
	}
	return nil
}

// DecodeLog decodes a month log from a stream of JSONL data, preserving
// append order. Empty lines are skipped.
func DecodeLog(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("could not decode log line %q: %w", string(line), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log: %w", err)
	}
	return records, nil
}

// EncodeSIPEntry marshals a single SIP entry to JSONL.
func EncodeSIPEntry(w io.Writer, e SIPEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal sip entry %q: %w", e.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write sip entry %q: %w", e.ID, err)
	}
	return nil
}

// DecodeSIPLog decodes a per-year SIP log from JSONL data in append order.
func DecodeSIPLog(r io.Reader) ([]SIPEntry, error) {
	var entries []SIPEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e SIPEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("could not decode sip log line %q: %w", string(line), err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading sip log: %w", err)
	}
	return entries, nil
}
