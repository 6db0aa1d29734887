package shared

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrBadMonth = errors.New("unrecognised month")

// monthAliases maps the shorthand month spellings that show up in intake
// sheets onto calendar months. Keys are lower-cased prefixes of what people
// actually type.
var monthAliases = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November,
	"dec": time.December,
}

// ParseMonth turns a month query value into the first day of that month.
// Accepted shapes: "2025-06", "2025-06-01", "June 2025", "june-2025",
// "sept 2025". A bare month name resolves against the current year.
func ParseMonth(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{"2006-01", "2006-01-02", "January 2006", "Jan 2006"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}

	name, yearPart := splitMonthYear(value)
	month, ok := monthAliases[name]
	if !ok {
		// Fall back to prefix matching for full spellings like "september".
		for alias, m := range monthAliases {
			if strings.HasPrefix(name, alias) {
				month, ok = m, true
				break
			}
		}
	}
	if !ok {
		return time.Time{}, ErrBadMonth
	}

	year := time.Now().UTC().Year()
	if yearPart != "" {
		parsed, err := strconv.Atoi(yearPart)
		if err != nil || parsed < 1950 || parsed > 2200 {
			return time.Time{}, ErrBadMonth
		}
		year = parsed
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

func splitMonthYear(value string) (name, year string) {
	lowered := strings.ToLower(value)
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == ','
	})
	if len(fields) == 0 {
		return "", ""
	}
	name = fields[0]
	if len(fields) > 1 {
		year = fields[len(fields)-1]
	}
	return name, year
}
