package ledger

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},

		// Relative Duration Format
		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-2w", today.Add(-14), false},
		{"+1m", today.AddMonths(1), false},
		{"-1y", today.AddYears(-1), false},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("ParseDate(%q) error = %v, want err %v", tt.input, err, tt.err)
			continue
		}
		if !tt.err && got != tt.expected {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestAddMonthsClamps(t *testing.T) {
	tests := []struct {
		start    string
		months   int
		expected string
	}{
		{"2024-01-31", 1, "2024-02-29"}, // leap year clamp
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-31", 2, "2024-03-31"}, // clamp does not stick
		{"2024-03-15", 1, "2024-04-15"},
		{"2024-12-10", 1, "2025-01-10"},
		{"2024-03-31", -1, "2024-02-29"},
	}
	for _, tt := range tests {
		got := MustParseDate(tt.start).AddMonths(tt.months)
		if got.String() != tt.expected {
			t.Errorf("%s + %d months = %s, want %s", tt.start, tt.months, got, tt.expected)
		}
	}
}

func TestMonthDateAnchoring(t *testing.T) {
	feb := NewMonth(2023, time.February)
	if got := feb.Date(31); got.String() != "2023-02-28" {
		t.Errorf("Feb 2023 anchored at day 31 = %s, want 2023-02-28", got)
	}
	if got := feb.Date(0); got.String() != "2023-02-01" {
		t.Errorf("Feb 2023 anchored at day 0 = %s, want 2023-02-01", got)
	}
	if !feb.Contains(NewDate(2023, time.February, 14)) {
		t.Error("Feb 2023 should contain 2023-02-14")
	}
	if feb.Contains(NewDate(2023, time.March, 1)) {
		t.Error("Feb 2023 should not contain 2023-03-01")
	}
}

func TestMonthKeyRoundTrip(t *testing.T) {
	m := NewMonth(2024, time.September)
	if m.Key() != "2024-09" {
		t.Fatalf("Key() = %q, want 2024-09", m.Key())
	}
	back, err := ParseMonth("2024-09")
	if err != nil {
		t.Fatal(err)
	}
	if back != m {
		t.Errorf("ParseMonth(Key()) = %v, want %v", back, m)
	}
}

func TestFrequencyNext(t *testing.T) {
	base := MustParseDate("2024-01-10")
	tests := []struct {
		freq     Frequency
		expected string
	}{
		{OneTime, "2024-01-10"},
		{Weekly, "2024-01-17"},
		{Monthly, "2024-02-10"},
		{Yearly, "2025-01-10"},
	}
	for _, tt := range tests {
		if got := tt.freq.Next(base); got.String() != tt.expected {
			t.Errorf("%s.Next(%s) = %s, want %s", tt.freq, base, got, tt.expected)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-03-05"` {
		t.Fatalf("marshal = %s, want \"2024-03-05\"", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
