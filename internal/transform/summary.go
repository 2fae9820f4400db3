package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// ==================== FILTER SUMMARY ====================

const (
	maxSummaryValues = 100
	maxSummaryLength = 30000
)

// ViewFilters pairs a view name with the filters active on it.
type ViewFilters struct {
	ViewName string
	Filters  []domain.Filter
}

// BuildFilterSummary renders the active filter state as a matrix for the
// summary sheet. When no view carries a filter it falls back to listing
// dashboard parameters, and failing that reports that nothing is applied.
func BuildFilterSummary(dashboardName string, generatedAt time.Time, views []ViewFilters, params []domain.Parameter) domain.OutputMatrix {
	m := domain.OutputMatrix{
		{"Filter Summary"},
		{"Dashboard", dashboardName},
		{"Generated", generatedAt.Format("2006-01-02 15:04:05")},
		{},
	}

	filtered := false
	for _, v := range views {
		if len(v.Filters) > 0 {
			filtered = true
			break
		}
	}

	switch {
	case filtered:
		m = append(m, []interface{}{"View", "Filter", "Applied Values"})
		for _, v := range views {
			for _, f := range v.Filters {
				m = append(m, []interface{}{v.ViewName, f.Field, RenderFilterValue(f)})
			}
		}
	case len(params) > 0:
		m = append(m, []interface{}{"Parameter", "Current Value"})
		for _, p := range params {
			m = append(m, []interface{}{p.Name, p.Value})
		}
	default:
		m = append(m, []interface{}{"No filters currently applied"})
	}
	return m
}

// RenderFilterValue summarizes one filter's payload as a single cell.
func RenderFilterValue(f domain.Filter) string {
	switch f.Kind {
	case domain.FilterRange:
		return renderRange(f.Min, f.Max)
	case domain.FilterRelativeDate:
		return truncateSummary(f.Period)
	default:
		return renderCategorical(f)
	}
}

func renderCategorical(f domain.Filter) string {
	values := f.Values
	overflow := 0
	if len(values) > maxSummaryValues {
		overflow = len(values) - maxSummaryValues
		values = values[:maxSummaryValues]
	}
	s := strings.Join(values, ", ")
	if overflow > 0 {
		s += fmt.Sprintf("...(%d more)", overflow)
	}
	if f.Exclude {
		s = "Excluded: " + s
	}
	return truncateSummary(s)
}

func renderRange(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%s to %s", formatFloat(*min), formatFloat(*max))
	case min != nil:
		return ">= " + formatFloat(*min)
	case max != nil:
		return "<= " + formatFloat(*max)
	}
	return ""
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) > maxSummaryLength {
		return string(runes[:maxSummaryLength])
	}
	return s
}
