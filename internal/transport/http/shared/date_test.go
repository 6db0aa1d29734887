package shared

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-06", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-06-15", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"June 2025", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"sept 2025", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)},
		{"SEPT-2025", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)},
		{"september 2024", time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)},
		{"jan 2026", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseMonth(tc.in)
		if err != nil {
			t.Fatalf("ParseMonth(%q) unexpected error: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseMonth(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseMonthRejectsGarbage(t *testing.T) {
	for _, in := range []string{"notamonth", "13 2025", "sept 1800"} {
		if _, err := ParseMonth(in); err == nil {
			t.Fatalf("ParseMonth(%q) should fail", in)
		}
	}
}

func TestParseMonthEmpty(t *testing.T) {
	got, err := ParseMonth("")
	if err != nil || !got.IsZero() {
		t.Fatalf("empty month should be zero with no error, got %v/%v", got, err)
	}
}
