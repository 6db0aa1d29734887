// Package dates coerces the date shapes found in legacy salary sheets to a
// canonical calendar date. Intake rows arrive with ISO strings, US-style
// strings, spreadsheet day serials, epoch numbers of assorted precision, and
// wrapped objects; Normalize accepts all of them and answers with a date or
// nil, never an error.
package dates

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"payrolld/internal/resolve"
)

// Kind tags how a raw value was classified before conversion. The guessing
// only happens here, at the ingestion boundary; everything downstream works
// with time.Time.
type Kind int

const (
	KindOpaque Kind = iota
	KindTime
	KindISOString
	KindUSString
	KindSerialNumber
	KindEpochMillis
	KindDecomposed
)

// Value is the classified form of a raw input.
type Value struct {
	Kind Kind
	Time *time.Time
}

// Clock accessor exposed by wrapped timestamp objects.
type TimeAccessor interface {
	Time() time.Time
}

const (
	storageLayout = "2006-01-02"
	displayLayout = "02 Jan 2006"
)

// displayZone pins display formatting to the payroll office zone so a record
// renders the same day regardless of server locale.
var displayZone = time.FixedZone("PKT", 5*60*60)

// Spreadsheet day serials count from 1899-12-30. Serials between 20000 and
// 80000 cover 1954..2118; digit strings in that range are treated as serials,
// anything else as an epoch. Ambiguous values near the boundary can
// misclassify; that is inherent to the legacy data.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const (
	serialMin = 20000
	serialMax = 80000
)

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Normalize coerces raw to a calendar date, or nil when no reading fits. It
// never panics.
func Normalize(raw any) *time.Time {
	v := Classify(raw)
	return v.Time
}

// Classify resolves raw through the fixed priority order: direct time value,
// time accessor, nested value/date/timestamp string, decomposed year/month/day
// fields, an ISO date embedded in any string property, numeric serial-vs-epoch
// heuristic, then a last-chance layout scan.
func Classify(raw any) Value {
	if raw == nil {
		return Value{Kind: KindOpaque}
	}

	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return Value{Kind: KindOpaque}
		}
		return Value{Kind: KindTime, Time: dateOnly(v)}
	case *time.Time:
		if v == nil || v.IsZero() {
			return Value{Kind: KindOpaque}
		}
		return Value{Kind: KindTime, Time: dateOnly(*v)}
	case TimeAccessor:
		t := v.Time()
		if t.IsZero() {
			return Value{Kind: KindOpaque}
		}
		return Value{Kind: KindTime, Time: dateOnly(t)}
	case map[string]any:
		return classifyWrapped(v)
	case string:
		return classifyString(v)
	case json.Number:
		return classifyNumeric(v.String())
	case float64:
		return classifyNumeric(strconv.FormatInt(int64(v), 10))
	case int:
		return classifyNumeric(strconv.Itoa(v))
	case int64:
		return classifyNumeric(strconv.FormatInt(v, 10))
	}
	return Value{Kind: KindOpaque}
}

func classifyWrapped(obj map[string]any) Value {
	for _, key := range []string{"value", "date", "timestamp"} {
		if nested, ok := obj[key].(string); ok && strings.TrimSpace(nested) != "" {
			if v := classifyString(nested); v.Time != nil {
				return v
			}
		}
	}

	if t := decomposedTime(obj); t != nil {
		return Value{Kind: KindDecomposed, Time: t}
	}

	// Last resort for wrapped objects: any string property carrying an
	// embedded YYYY-MM-DD.
	for _, value := range obj {
		s, ok := value.(string)
		if !ok {
			continue
		}
		if match := isoDatePattern.FindString(s); match != "" {
			if t, err := time.Parse(storageLayout, match); err == nil {
				return Value{Kind: KindISOString, Time: dateOnly(t)}
			}
		}
	}
	return Value{Kind: KindOpaque}
}

func decomposedTime(obj map[string]any) *time.Time {
	year, okYear := intField(obj, "year")
	month, okMonth := intField(obj, "month")
	day, okDay := intField(obj, "day")
	if !okYear || !okMonth || !okDay {
		return nil
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject those.
	if t.Day() != day || int(t.Month()) != month {
		return nil
	}
	return &t
}

func intField(obj map[string]any, key string) (int, bool) {
	switch v := obj[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func classifyString(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{Kind: KindOpaque}
	}

	if isDigits(s) {
		return classifyNumeric(s)
	}

	type attempt struct {
		kind    Kind
		layouts []string
	}
	attempts := []attempt{
		{KindISOString, []string{storageLayout, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}},
		{KindUSString, []string{"01/02/2006", "1/2/2006"}},
	}
	for _, a := range attempts {
		for _, layout := range a.layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Value{Kind: a.kind, Time: dateOnly(t)}
			}
		}
	}

	// Generic scan: an ISO date embedded anywhere in the string.
	if match := isoDatePattern.FindString(s); match != "" {
		if t, err := time.Parse(storageLayout, match); err == nil {
			return Value{Kind: KindISOString, Time: dateOnly(t)}
		}
	}

	// Last-chance layouts seen in hand-edited sheets.
	fallback := resolve.First(
		func() *time.Time { return tryParse("2 January 2006", s) },
		func() *time.Time { return tryParse("2 Jan 2006", s) },
		func() *time.Time { return tryParse("02 Jan 2006", s) },
		func() *time.Time { return tryParse("Jan 2, 2006", s) },
		func() *time.Time { return tryParse("January 2, 2006", s) },
	)
	if fallback != nil {
		return Value{Kind: KindISOString, Time: fallback}
	}
	return Value{Kind: KindOpaque}
}

func tryParse(layout, s string) *time.Time {
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	return dateOnly(t)
}

// classifyNumeric applies the serial-vs-epoch heuristic to a digit string.
// Values inside the plausible day-serial window are read as days from the
// 1899-12-30 epoch; everything else is an epoch value whose precision is
// inferred from digit count and truncated to milliseconds by integer
// division.
func classifyNumeric(digits string) Value {
	digits = strings.TrimSpace(digits)
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n <= 0 {
		return Value{Kind: KindOpaque}
	}

	if n >= serialMin && n <= serialMax {
		t := serialEpoch.AddDate(0, 0, int(n))
		return Value{Kind: KindSerialNumber, Time: dateOnly(t)}
	}

	millis := n
	switch {
	case len(digits) <= 10:
		millis = n * 1000
	case len(digits) <= 13:
		// already milliseconds
	default:
		for i := len(digits); i > 13; i-- {
			millis /= 10
		}
	}

	t := time.UnixMilli(millis).UTC()
	if t.Year() < 1950 || t.Year() > 2200 {
		return Value{Kind: KindOpaque}
	}
	return Value{Kind: KindEpochMillis, Time: dateOnly(t)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func dateOnly(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// FormatDisplay renders a date as "DD Mon YYYY" in the fixed office zone.
func FormatDisplay(t time.Time) string {
	return t.In(displayZone).Format(displayLayout)
}

// FormatStorage renders the canonical YYYY-MM-DD form used for storage and
// API round-trips.
func FormatStorage(t time.Time) string {
	return t.Format(storageLayout)
}
