package transform

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// ==================== SORT STAGE ====================

// fallbackDateLayouts are tried when a sort value is not a month-year label.
var fallbackDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// SortMatrix stably sorts the matrix body by one column, leaving the header
// row in place. The comparator follows the column's output type: numeric and
// date keys sink unparseable values to negative infinity, text compares
// case-insensitively. An out-of-range column index or a matrix with at most
// one row is returned unchanged.
func SortMatrix(m domain.OutputMatrix, col int, dir domain.SortDirection, out domain.OutputType) domain.OutputMatrix {
	if col < 0 || len(m) <= 1 {
		return m
	}
	if len(m[0]) > 0 && col >= len(m[0]) {
		return m
	}

	body := m[1:]
	desc := dir == domain.SortDescending

	switch out {
	case domain.OutputNumber:
		sort.SliceStable(body, func(i, j int) bool {
			a, b := numericSortKey(valueAt(body[i], col)), numericSortKey(valueAt(body[j], col))
			if desc {
				return b < a
			}
			return a < b
		})
	case domain.OutputShortDate, domain.OutputFullDate:
		sort.SliceStable(body, func(i, j int) bool {
			a, b := dateSortKey(valueAt(body[i], col)), dateSortKey(valueAt(body[j], col))
			if desc {
				return b < a
			}
			return a < b
		})
	default:
		sort.SliceStable(body, func(i, j int) bool {
			a := strings.ToLower(renderValue(valueAt(body[i], col)))
			b := strings.ToLower(renderValue(valueAt(body[j], col)))
			if desc {
				return b < a
			}
			return a < b
		})
	}
	return m
}

func valueAt(row []interface{}, col int) interface{} {
	if col < len(row) {
		return row[col]
	}
	return nil
}

func numericSortKey(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	if f, err := parseFloat(renderValue(v)); err == nil {
		return f
	}
	return math.Inf(-1)
}

func dateSortKey(v interface{}) float64 {
	s := strings.TrimSpace(renderValue(v))
	if t, ok := parseMonthYear(s); ok {
		return float64(t.Unix())
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.Unix())
		}
	}
	return math.Inf(-1)
}
