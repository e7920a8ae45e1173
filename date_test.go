package finance

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateFormats(t *testing.T) {
	d := NewDate(2025, time.September, 4)
	if got := d.String(); got != "2025-09-04" {
		t.Errorf("String() = %q, want %q", got, "2025-09-04")
	}
	if got := d.Compact(); got != "04092025" {
		t.Errorf("Compact() = %q, want %q", got, "04092025")
	}
	if got := d.Dashed(); got != "04-09-2025" {
		t.Errorf("Dashed() = %q, want %q", got, "04-09-2025")
	}
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-09-04", want: NewDate(2025, time.September, 4)},
		{in: "2025-9-4", want: NewDate(2025, time.September, 4)},
		{in: " 2025-01-31 ", want: NewDate(2025, time.January, 31)},
		{in: "04-09-2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) expected an error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDateNormalization(t *testing.T) {
	// Overflowing days roll over into the next month.
	d := NewDate(2025, time.January, 32)
	if want := NewDate(2025, time.February, 1); d != want {
		t.Errorf("NewDate(2025, January, 32) = %v, want %v", d, want)
	}
	if got, want := NewDate(2025, time.February, 28).Add(1), NewDate(2025, time.March, 1); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestDateJSONZeroValue(t *testing.T) {
	data, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("zero date marshaled as %s, want \"\"", data)
	}
	var d Date
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("round-tripped zero date is %v, want zero", d)
	}
}

func TestMonth(t *testing.T) {
	m := NewMonth(2025, time.September)
	if got := m.String(); got != "2025-09" {
		t.Errorf("String() = %q, want %q", got, "2025-09")
	}
	if got, want := m.Next(), NewMonth(2025, time.October); got != want {
		t.Errorf("Next() = %v, want %v", got, want)
	}
	if got, want := NewMonth(2025, time.December).Next(), NewMonth(2026, time.January); got != want {
		t.Errorf("Next() across year = %v, want %v", got, want)
	}
	if !NewMonth(2025, time.August).Before(m) {
		t.Error("August should be before September")
	}
	if m.Before(m) {
		t.Error("a month must not be before itself")
	}
	if !m.Contains(NewDate(2025, time.September, 30)) {
		t.Error("Contains(2025-09-30) = false, want true")
	}
	if m.Contains(NewDate(2025, time.October, 1)) {
		t.Error("Contains(2025-10-01) = true, want false")
	}
}

func TestParseMonth(t *testing.T) {
	testCases := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "2025-09", want: NewMonth(2025, time.September)},
		{in: "2025-9", want: NewMonth(2025, time.September)},
		{in: "2025", wantErr: true},
		{in: "sep-2025", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseMonth(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMonth(%q) expected an error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMonth(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMonth(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
