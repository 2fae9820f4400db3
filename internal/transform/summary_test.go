package transform

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildFilterSummaryLayout(t *testing.T) {
	generated := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
	views := []ViewFilters{
		{
			ViewName: "Monthly Sales",
			Filters: []domain.Filter{
				{Field: "Region", Kind: domain.FilterCategorical, Values: []string{"East", "West"}},
			},
		},
		{
			ViewName: "Headcount",
			Filters: []domain.Filter{
				{Field: "Salary", Kind: domain.FilterRange, Min: floatPtr(50000), Max: floatPtr(90000)},
			},
		},
	}

	m := BuildFilterSummary("Sales Dashboard", generated, views, nil)

	if len(m) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(m))
	}
	if m[0][0] != "Filter Summary" {
		t.Errorf("row 0 = %v", m[0])
	}
	if m[1][0] != "Dashboard" || m[1][1] != "Sales Dashboard" {
		t.Errorf("row 1 = %v", m[1])
	}
	if m[2][0] != "Generated" || m[2][1] != "2024-03-15 09:30:00" {
		t.Errorf("row 2 = %v", m[2])
	}
	if len(m[3]) != 0 {
		t.Errorf("row 3 should be a spacer, got %v", m[3])
	}
	if m[4][0] != "View" || m[4][1] != "Filter" || m[4][2] != "Applied Values" {
		t.Errorf("row 4 = %v", m[4])
	}
	if m[5][0] != "Monthly Sales" || m[5][1] != "Region" || m[5][2] != "East, West" {
		t.Errorf("row 5 = %v", m[5])
	}
	if m[6][0] != "Headcount" || m[6][1] != "Salary" || m[6][2] != "50000 to 90000" {
		t.Errorf("row 6 = %v", m[6])
	}
}

func TestBuildFilterSummaryParameterFallback(t *testing.T) {
	params := []domain.Parameter{
		{Name: "Fiscal Year", Value: "2024"},
		{Name: "Currency", Value: "USD"},
	}

	m := BuildFilterSummary("Sales Dashboard", time.Now(), nil, params)

	if len(m) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(m))
	}
	if m[4][0] != "Parameter" || m[4][1] != "Current Value" {
		t.Errorf("row 4 = %v", m[4])
	}
	if m[5][0] != "Fiscal Year" || m[5][1] != "2024" {
		t.Errorf("row 5 = %v", m[5])
	}
}

func TestBuildFilterSummaryNothingApplied(t *testing.T) {
	// Views without filters do not count as filtered.
	views := []ViewFilters{{ViewName: "Monthly Sales"}}

	m := BuildFilterSummary("Sales Dashboard", time.Now(), views, nil)

	last := m[len(m)-1]
	if last[0] != "No filters currently applied" {
		t.Errorf("last row = %v", last)
	}
}

func TestRenderFilterValueCategorical(t *testing.T) {
	f := domain.Filter{
		Kind:   domain.FilterCategorical,
		Values: []string{"East", "West", "North"},
	}
	if got := RenderFilterValue(f); got != "East, West, North" {
		t.Errorf("got %q", got)
	}
}

func TestRenderFilterValueCategoricalOverflow(t *testing.T) {
	values := make([]string, 130)
	for i := range values {
		values[i] = fmt.Sprintf("v%03d", i)
	}
	f := domain.Filter{Kind: domain.FilterCategorical, Values: values}

	got := RenderFilterValue(f)
	if !strings.HasSuffix(got, "...(30 more)") {
		t.Errorf("expected overflow suffix, got %q", got[len(got)-40:])
	}
	if strings.Contains(got, "v100") {
		t.Errorf("values beyond the cap should not be listed")
	}
	if !strings.Contains(got, "v099") {
		t.Errorf("values inside the cap should be listed")
	}
}

func TestRenderFilterValueExcludeMode(t *testing.T) {
	f := domain.Filter{
		Kind:    domain.FilterCategorical,
		Values:  []string{"Internal", "Test"},
		Exclude: true,
	}
	if got := RenderFilterValue(f); got != "Excluded: Internal, Test" {
		t.Errorf("got %q", got)
	}
}

func TestRenderFilterValueTruncatesLongJoin(t *testing.T) {
	values := make([]string, 100)
	for i := range values {
		values[i] = strings.Repeat("x", 400)
	}
	f := domain.Filter{Kind: domain.FilterCategorical, Values: values}

	got := RenderFilterValue(f)
	if n := len([]rune(got)); n != maxSummaryLength {
		t.Errorf("expected hard cap at %d runes, got %d", maxSummaryLength, n)
	}
}

func TestRenderFilterValueRange(t *testing.T) {
	tests := map[string]struct {
		min, max *float64
		want     string
	}{
		"both ends":  {floatPtr(10), floatPtr(20.5), "10 to 20.5"},
		"only min":   {floatPtr(10), nil, ">= 10"},
		"only max":   {nil, floatPtr(20), "<= 20"},
		"open range": {nil, nil, ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := domain.Filter{Kind: domain.FilterRange, Min: tc.min, Max: tc.max}
			if got := RenderFilterValue(f); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderFilterValueRelativeDate(t *testing.T) {
	f := domain.Filter{Kind: domain.FilterRelativeDate, Period: "Last 3 Months"}
	if got := RenderFilterValue(f); got != "Last 3 Months" {
		t.Errorf("got %q", got)
	}
}
