package finance

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "credit", want: Credit},
		{in: "CREDIT", want: Credit},
		{in: "debit", want: Debit},
		{in: " Debit ", want: Debit},
		{in: "", want: Debit},
		{in: "transfer", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q) expected an error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestKindSigned(t *testing.T) {
	if got := Credit.Signed(M(10)); !got.Equal(M(10)) {
		t.Errorf("credit signed = %s, want 10", got)
	}
	if got := Debit.Signed(M(10)); !got.Equal(M(-10)) {
		t.Errorf("debit signed = %s, want -10", got)
	}
}

func TestRecordCanonicalJSON(t *testing.T) {
	rec := Record{
		ID:           "202504092025-EXP-0000",
		Date:         NewDate(2025, time.September, 4),
		Category:     "expense",
		Description:  "groceries",
		Amount:       M(40),
		Kind:         Debit,
		BalanceAfter: M(60),
	}
	var buf bytes.Buffer
	if err := EncodeRecord(&buf, rec); err != nil {
		t.Fatalf("EncodeRecord() failed: %v", err)
	}
	want := `{"id":"202504092025-EXP-0000","date":"2025-09-04","category":"expense","description":"groceries","amount":40,"kind":"debit","balanceAfter":60}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("log line\n got %s\nwant %s", got, want)
	}
}

func TestDecodeLogPreservesOrder(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"a","date":"2025-09-01","amount":100,"kind":"credit","balanceAfter":100}`,
		``,
		`{"id":"b","date":"2025-09-02","amount":40,"kind":"debit","balanceAfter":60}`,
	}, "\n")
	records, err := DecodeLog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLog() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("decoded %d records, want 2", len(records))
	}
	if records[0].ID != "a" || records[1].ID != "b" {
		t.Errorf("decoded order = %q, %q", records[0].ID, records[1].ID)
	}
	if !records[1].BalanceAfter.Equal(M(60)) {
		t.Errorf("balanceAfter = %s, want 60", records[1].BalanceAfter)
	}
}

func TestDecodeLogRejectsGarbage(t *testing.T) {
	if _, err := DecodeLog(strings.NewReader("not json\n")); err == nil {
		t.Error("DecodeLog() accepted a malformed line")
	}
}

func TestSIPEntryRoundTrip(t *testing.T) {
	e := SIPEntry{
		ID:         "14-09-2025-PARAGP-123-1757845800000",
		Date:       NewDate(2025, time.September, 14),
		SchemeCode: "PARAGP-123",
		FundName:   "Parag Parikh Flexi Cap",
		Category:   "Flexi Cap",
		Amount:     M(1000),
		Units:      U(8.5324),
		TotalUnits: U(8.5324),
		NAV:        M(117.2),
		Value:      M(1000),
	}
	var buf bytes.Buffer
	if err := EncodeSIPEntry(&buf, e); err != nil {
		t.Fatalf("EncodeSIPEntry() failed: %v", err)
	}
	entries, err := DecodeSIPLog(&buf)
	if err != nil {
		t.Fatalf("DecodeSIPLog() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.ID != e.ID || !got.Units.Equal(e.Units) || !got.NAV.Equal(e.NAV) || got.FundName != e.FundName {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}
}

func TestSIPEntryKeepsNAVPrecision(t *testing.T) {
	e := SIPEntry{
		ID:         "14-09-2025-PARAGP-123-1757845800000",
		Date:       NewDate(2025, time.September, 14),
		SchemeCode: "PARAGP-123",
		FundName:   "Parag Parikh Flexi Cap",
		Amount:     M(1000),
		Units:      U(8.5311),
		TotalUnits: U(8.5311),
		NAV:        M(117.2345),
		Value:      M(1000.1135),
	}
	var buf bytes.Buffer
	if err := EncodeSIPEntry(&buf, e); err != nil {
		t.Fatalf("EncodeSIPEntry() failed: %v", err)
	}
	line := buf.String()
	if !strings.Contains(line, `"nav":117.2345`) {
		t.Errorf("encoded entry rounds the nav: %s", line)
	}
	if !strings.Contains(line, `"value":1000.1135`) {
		t.Errorf("encoded entry rounds the value: %s", line)
	}
	entries, err := DecodeSIPLog(&buf)
	if err != nil {
		t.Fatalf("DecodeSIPLog() failed: %v", err)
	}
	if !entries[0].NAV.Equal(M(117.2345)) {
		t.Errorf("decoded nav = %s, want 117.2345", entries[0].NAV)
	}
}
