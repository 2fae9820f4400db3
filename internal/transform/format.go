package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// ==================== VALUE FORMATTING ====================

// monthAbbrevs maps full month names to the three-letter form used by the
// short date representation.
var monthAbbrevs = map[string]string{
	"january":   "Jan",
	"february":  "Feb",
	"march":     "Mar",
	"april":     "Apr",
	"may":       "May",
	"june":      "Jun",
	"july":      "Jul",
	"august":    "Aug",
	"september": "Sep",
	"october":   "Oct",
	"november":  "Nov",
	"december":  "Dec",
}

// monthNumbers accepts both full and abbreviated month names.
var monthNumbers = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	shortDatePattern = regexp.MustCompile(`^[A-Za-z]{3}-\d{4}$`)
	monthYearPattern = regexp.MustCompile(`^([A-Za-z]+)[ -](\d{4})$`)
)

// FormatValue coerces one cell into the chosen output representation. It never
// fails: when a value cannot be coerced the source-formatted display string is
// returned as-is, so a bad cell degrades instead of aborting its row.
func FormatValue(raw interface{}, display string, out domain.OutputType) interface{} {
	switch out {
	case domain.OutputNumber:
		return formatNumber(raw, display)
	case domain.OutputShortDate:
		return formatShortDate(raw, display)
	default:
		// Text and full date keep the source formatting verbatim.
		return display
	}
}

func formatNumber(raw interface{}, display string) interface{} {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := parseFloat(v); err == nil {
			return f
		}
	}
	return display
}

func formatShortDate(raw interface{}, display string) interface{} {
	trimmed := strings.TrimSpace(display)
	if shortDatePattern.MatchString(trimmed) {
		return display
	}
	if m := monthYearPattern.FindStringSubmatch(trimmed); m != nil {
		if abbrev, ok := monthAbbrevs[strings.ToLower(m[1])]; ok {
			return abbrev + "-" + m[2]
		}
	}
	if t, ok := raw.(time.Time); ok {
		return t.Format("Jan-2006")
	}
	return display
}

// parseFloat parses a rendered number, tolerating thousands separators and
// surrounding whitespace.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// parseMonthYear reads a month-year label ("Jan-2023", "January 2023") into
// the first day of that month.
func parseMonthYear(s string) (time.Time, bool) {
	m := monthYearPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthNumbers[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// renderValue renders a matrix cell for width measurement and text comparison.
func renderValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
