package dates

import (
	"testing"
	"time"
)

type tsWrapper struct{ at time.Time }

func (w tsWrapper) Time() time.Time { return w.at }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeDirectTime(t *testing.T) {
	at := time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC)
	got := Normalize(at)
	if got == nil || !got.Equal(date(2025, time.March, 14)) {
		t.Fatalf("expected 2025-03-14, got %v", got)
	}
}

func TestNormalizeTimeAccessor(t *testing.T) {
	got := Normalize(tsWrapper{at: date(2024, time.July, 1)})
	if got == nil || !got.Equal(date(2024, time.July, 1)) {
		t.Fatalf("expected 2024-07-01, got %v", got)
	}
}

func TestNormalizeStrings(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-09-20", date(2025, time.September, 20)},
		{"2025-09-20T10:15:00Z", date(2025, time.September, 20)},
		{"09/20/2025", date(2025, time.September, 20)},
		{"9/5/2025", date(2025, time.September, 5)},
		{"joined on 2023-01-31 (probation)", date(2023, time.January, 31)},
		{"20 Sep 2025", date(2025, time.September, 20)},
	}
	for _, c := range cases {
		got := Normalize(c.in)
		if got == nil || !got.Equal(c.want) {
			t.Fatalf("Normalize(%q) = %v, want %s", c.in, got, c.want.Format("2006-01-02"))
		}
	}
}

func TestNormalizeWrappedObject(t *testing.T) {
	got := Normalize(map[string]any{"value": "2022-11-30"})
	if got == nil || !got.Equal(date(2022, time.November, 30)) {
		t.Fatalf("nested value string: got %v", got)
	}

	got = Normalize(map[string]any{"timestamp": "2022-11-30T08:00:00Z"})
	if got == nil || !got.Equal(date(2022, time.November, 30)) {
		t.Fatalf("nested timestamp string: got %v", got)
	}

	got = Normalize(map[string]any{"year": 2021, "month": 2, "day": 28})
	if got == nil || !got.Equal(date(2021, time.February, 28)) {
		t.Fatalf("decomposed fields: got %v", got)
	}

	if got := Normalize(map[string]any{"year": 2021, "month": 2, "day": 30}); got != nil {
		t.Fatalf("impossible decomposed date should be nil, got %v", got)
	}

	got = Normalize(map[string]any{"note": "paid until 2020-06-15 inclusive"})
	if got == nil || !got.Equal(date(2020, time.June, 15)) {
		t.Fatalf("embedded date in string property: got %v", got)
	}
}

func TestClassifySerialVersusEpoch(t *testing.T) {
	// 45000 days from 1899-12-30 is 2023-03-15.
	v := Classify("45000")
	if v.Kind != KindSerialNumber {
		t.Fatalf("expected serial classification, got kind %d", v.Kind)
	}
	if v.Time == nil || !v.Time.Equal(date(2023, time.March, 15)) {
		t.Fatalf("serial 45000: got %v", v.Time)
	}

	// Ten digits reads as epoch seconds.
	v = Classify("1758326400")
	if v.Kind != KindEpochMillis {
		t.Fatalf("expected epoch classification, got kind %d", v.Kind)
	}
	if v.Time == nil || !v.Time.Equal(date(2025, time.September, 20)) {
		t.Fatalf("epoch seconds: got %v", v.Time)
	}

	// Thirteen digits reads as epoch millis.
	v = Classify(int64(1758326400000))
	if v.Kind != KindEpochMillis || v.Time == nil || !v.Time.Equal(date(2025, time.September, 20)) {
		t.Fatalf("epoch millis: got kind %d time %v", v.Kind, v.Time)
	}

	// Sixteen digits (micros) truncates to millis by integer division.
	v = Classify("1758326400000000")
	if v.Kind != KindEpochMillis || v.Time == nil || !v.Time.Equal(date(2025, time.September, 20)) {
		t.Fatalf("epoch micros: got kind %d time %v", v.Kind, v.Time)
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	for _, raw := range []any{nil, "", "not a date", "-5", struct{}{}, map[string]any{"value": 3}, time.Time{}} {
		if got := Normalize(raw); got != nil {
			t.Fatalf("Normalize(%v) should be nil, got %v", raw, got)
		}
	}
}

func TestStorageRoundTrip(t *testing.T) {
	for _, d := range []time.Time{
		date(1999, time.December, 31),
		date(2020, time.February, 29),
		date(2025, time.June, 1),
	} {
		got := Normalize(FormatStorage(d))
		if got == nil || !got.Equal(d) {
			t.Fatalf("round trip failed for %s: got %v", d, got)
		}
	}
}

func TestFormatDisplay(t *testing.T) {
	if got := FormatDisplay(date(2025, time.September, 5)); got != "05 Sep 2025" {
		t.Fatalf("expected 05 Sep 2025, got %q", got)
	}
}
