package payroll

import (
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestWorkedDays(t *testing.T) {
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) // 30 days

	cases := []struct {
		name  string
		join  *time.Time
		leave *time.Time
		want  int
	}{
		{"no boundaries", nil, nil, 30},
		{"join mid month", day(2025, time.June, 20), nil, 11},
		{"join first day", day(2025, time.June, 1), nil, 30},
		{"join outside month pays full", day(2025, time.May, 10), nil, 30},
		{"leave mid month", nil, day(2025, time.June, 10), 10},
		{"leave outside month pays full", nil, day(2025, time.July, 2), 30},
		{"join and leave inside", day(2025, time.June, 5), day(2025, time.June, 20), 16},
		{"join inside leave outside", day(2025, time.June, 20), day(2025, time.July, 15), 11},
		{"join outside leave inside", day(2025, time.May, 1), day(2025, time.June, 10), 10},
		{"both outside", day(2025, time.May, 1), day(2025, time.July, 31), 30},
	}
	for _, c := range cases {
		if got := WorkedDays(c.join, c.leave, june); got != c.want {
			t.Fatalf("%s: expected %d, got %d", c.name, c.want, got)
		}
	}
}

func TestWorkedDaysMonotonicWithinMonth(t *testing.T) {
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	// Shrinking the [join, leave] window inside the month never increases the
	// worked-day count.
	prev := WorkedDays(day(2025, time.June, 1), day(2025, time.June, 30), june)
	for shrink := 1; shrink <= 14; shrink++ {
		got := WorkedDays(day(2025, time.June, 1+shrink), day(2025, time.June, 30-shrink), june)
		if got > prev {
			t.Fatalf("shrink %d: %d > previous %d", shrink, got, prev)
		}
		prev = got
	}
}

func TestProratedPayScenarioA(t *testing.T) {
	// Join on day 20 of a 30-day month, base pay 30000.
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	worked := WorkedDays(day(2025, time.June, 20), nil, june)
	if worked != 11 {
		t.Fatalf("expected 11 worked days, got %d", worked)
	}
	got := ProratedPay(ptr(30000), 30, worked)
	if got == nil || *got != 11000 {
		t.Fatalf("expected 11000, got %v", got)
	}
}

func TestRevisedPayScenarioB(t *testing.T) {
	// PKR past probation: base 1000 becomes 1021 and a full month grosses it
	// unchanged.
	revised := RevisedPay(1000, CurrencyPKR, false)
	if revised != 1021 {
		t.Fatalf("expected 1021, got %v", revised)
	}
	prorated := ProratedPay(&revised, 30, 30)
	if prorated == nil || *prorated != 1021 {
		t.Fatalf("expected prorated 1021, got %v", prorated)
	}
	if gross := GrossIncome(prorated, nil, nil, nil, nil, nil); gross != 1021 {
		t.Fatalf("expected gross 1021, got %v", gross)
	}
}

func TestRevisedPayProbationAndCurrency(t *testing.T) {
	if got := RevisedPay(1000, CurrencyPKR, true); got != 1000 {
		t.Fatalf("probation must not add allowance, got %v", got)
	}
	if got := RevisedPay(1000, CurrencyUSD, false); got != 1000 {
		t.Fatalf("USD must not add allowance, got %v", got)
	}
}

func TestProratedPayInvalidInput(t *testing.T) {
	if got := ProratedPay(nil, 30, 10); got != nil {
		t.Fatalf("nil revised pay should stay nil, got %v", got)
	}
	if got := ProratedPay(ptr(1000), 0, 10); got != nil {
		t.Fatalf("zero-day month should yield nil, got %v", got)
	}
}

func TestGrossIncomeTreatsNilAsZero(t *testing.T) {
	if got := GrossIncome(nil, nil, nil, nil, nil, nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	got := GrossIncome(ptr(11000), ptr(500), nil, ptr(120.50), nil, ptr(79.50))
	if got != 11700 {
		t.Fatalf("expected 11700, got %v", got)
	}
}

func TestNetIncome(t *testing.T) {
	if got := NetIncome(11500, nil); got != 11500 {
		t.Fatalf("nil deductions: expected 11500, got %v", got)
	}
	if got := NetIncome(11500, ptr(1500)); got != 10000 {
		t.Fatalf("expected 10000, got %v", got)
	}
}

func TestCalendarHelpers(t *testing.T) {
	feb := time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC)
	if got := DaysInMonth(feb); got != 29 {
		t.Fatalf("expected 29 days in Feb 2024, got %d", got)
	}
	if got := MonthAbbrev(feb); got != "Feb" {
		t.Fatalf("expected Feb, got %q", got)
	}
	if got := MonthEnd(feb); got.Day() != 29 {
		t.Fatalf("expected month end 29, got %d", got.Day())
	}
}

func TestInProbation(t *testing.T) {
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	if InProbation(nil, june) {
		t.Fatal("nil probation end must not count as probation")
	}
	if !InProbation(day(2025, time.June, 15), june) {
		t.Fatal("probation ending mid month counts as in probation")
	}
	if InProbation(day(2025, time.May, 31), june) {
		t.Fatal("probation ended before the month must not count")
	}
	if InProbation(day(2025, time.June, 1), june) {
		t.Fatal("probation ending on the first is already over")
	}
}
