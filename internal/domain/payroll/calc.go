package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pure pay arithmetic for one payroll month. Nothing here touches the store
// or returns an error; invalid input yields nil (for nullable figures) or the
// documented default.

// DaysInMonth returns the calendar length of the month containing t.
func DaysInMonth(month time.Time) int {
	first := MonthStart(month)
	return first.AddDate(0, 1, -1).Day()
}

// MonthStart truncates t to the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// MonthAbbrev returns the three-letter month abbreviation used in sheet keys.
func MonthAbbrev(month time.Time) string {
	return month.Format("Jan")
}

func sameMonth(t, month time.Time) bool {
	return t.Year() == month.Year() && t.Month() == month.Month()
}

// WorkedDays counts the days worked inside the target month given optional
// join and leave dates.
//
// A join or leave falling outside the month does not prorate: the member is
// paid the full month. That matches the historical sheets, where out-of-month
// boundaries were recorded on the neighbouring month's row.
func WorkedDays(join, leave *time.Time, month time.Time) int {
	total := DaysInMonth(month)

	joinIn := join != nil && sameMonth(*join, month)
	leaveIn := leave != nil && sameMonth(*leave, month)

	switch {
	case joinIn && leaveIn:
		return leave.Day() - join.Day() + 1
	case joinIn:
		return total - join.Day() + 1
	case leaveIn:
		return leave.Day()
	default:
		return total
	}
}

// InProbation reports whether the member is still on probation for the target
// month: a probation end date strictly after the first of the month counts as
// in probation.
func InProbation(probationEnd *time.Time, month time.Time) bool {
	if probationEnd == nil {
		return false
	}
	return probationEnd.After(MonthStart(month))
}

// RevisedPay applies the PKR post-probation allowance on top of base pay.
// Other currencies pass through unchanged.
func RevisedPay(basePay float64, currency string, inProbation bool) float64 {
	if currency == CurrencyPKR && !inProbation {
		return basePay + PostProbationAllowancePKR
	}
	return basePay
}

// ProratedPay scales revisedPay by workedDays/totalDays, rounded to two
// places. Nil when revisedPay is missing or totalDays is zero.
func ProratedPay(revisedPay *float64, totalDays, workedDays int) *float64 {
	if revisedPay == nil || totalDays == 0 {
		return nil
	}
	out := decimal.NewFromFloat(*revisedPay).
		Mul(decimal.NewFromInt(int64(workedDays))).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(2).
		InexactFloat64()
	return &out
}

// GrossIncome sums the earning components, treating missing values as zero.
// The result is always a concrete figure, never nil.
func GrossIncome(prorated, bonus, overtime, reimbursements, other, payableFromLastMonth *float64) float64 {
	sum := decimal.Zero
	for _, component := range []*float64{prorated, bonus, overtime, reimbursements, other, payableFromLastMonth} {
		if component != nil {
			sum = sum.Add(decimal.NewFromFloat(*component))
		}
	}
	return sum.Round(2).InexactFloat64()
}

// NetIncome is gross minus deductions, missing deductions counting as zero.
func NetIncome(gross float64, deductions *float64) float64 {
	d := decimal.Zero
	if deductions != nil {
		d = decimal.NewFromFloat(*deductions)
	}
	return decimal.NewFromFloat(gross).Sub(d).Round(2).InexactFloat64()
}
