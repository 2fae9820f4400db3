package repository

import (
	"testing"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

func TestRenderDisplay(t *testing.T) {
	tests := map[string]struct {
		value interface{}
		typ   domain.ScalarType
		want  string
	}{
		"nil":               {nil, domain.ScalarText, ""},
		"string":            {"East", domain.ScalarText, "East"},
		"bytes":             {[]byte("West"), domain.ScalarText, "West"},
		"int":               {42, domain.ScalarInteger, "42"},
		"int64":             {int64(42), domain.ScalarInteger, "42"},
		"float":             {1250.5, domain.ScalarFloat, "1250.5"},
		"float no trailing": {15.0, domain.ScalarFloat, "15"},
		"bool":              {true, domain.ScalarBoolean, "true"},
		"month grain date":  {time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), domain.ScalarDate, "March 2024"},
		"day grain date":    {time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), domain.ScalarDate, "2024-03-15"},
		"first with time":   {time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC), domain.ScalarDate, "2024-03-01"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := renderDisplay(tc.value, tc.typ)
			if got != tc.want {
				t.Errorf("renderDisplay(%#v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestNewCellKeepsRawValue(t *testing.T) {
	cell := newCell(int64(7), domain.ScalarInteger)
	if cell.Raw != int64(7) {
		t.Errorf("Raw = %#v, want int64(7)", cell.Raw)
	}
	if cell.Display != "7" {
		t.Errorf("Display = %q, want %q", cell.Display, "7")
	}
}

func TestNormalizeDBValue(t *testing.T) {
	if got := normalizeDBValue([]byte("1250.50")); got != "1250.50" {
		t.Errorf("bytes = %#v, want string", got)
	}
	if got := normalizeDBValue(int64(3)); got != int64(3) {
		t.Errorf("int64 = %#v, want passthrough", got)
	}
	if got := normalizeDBValue(nil); got != nil {
		t.Errorf("nil = %#v, want nil", got)
	}
}

func TestScalarTypeFromDB(t *testing.T) {
	tests := map[string]domain.ScalarType{
		"INT8":        domain.ScalarInteger,
		"INT4":        domain.ScalarInteger,
		"numeric":     domain.ScalarFloat,
		"FLOAT8":      domain.ScalarFloat,
		"BOOL":        domain.ScalarBoolean,
		"DATE":        domain.ScalarDate,
		"TIMESTAMPTZ": domain.ScalarDate,
		"VARCHAR":     domain.ScalarText,
		"TEXT":        domain.ScalarText,
		"JSONB":       domain.ScalarOther,
		"":            domain.ScalarOther,
	}

	for dbType, want := range tests {
		if got := scalarTypeFromDB(dbType); got != want {
			t.Errorf("scalarTypeFromDB(%q) = %q, want %q", dbType, got, want)
		}
	}
}

func TestPeriodCutoff(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		period string
		want   time.Time
		ok     bool
	}{
		"last 30 days":  {"Last 30 days", now.AddDate(0, 0, -30), true},
		"last 7 days":   {"last 7 days", now.AddDate(0, 0, -7), true},
		"last 3 months": {"Last 3 months", now.AddDate(0, -3, 0), true},
		"this month":    {"This month", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), true},
		"this year":     {"This year", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		"year to date":  {"Year to date", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		"unknown label": {"Whenever", time.Time{}, false},
		"empty":         {"", time.Time{}, false},
		"zero days":     {"Last 0 days", time.Time{}, false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := periodCutoff(tc.period, now)
			if ok != tc.ok {
				t.Fatalf("periodCutoff(%q) ok = %v, want %v", tc.period, ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("periodCutoff(%q) = %v, want %v", tc.period, got, tc.want)
			}
		})
	}
}

func TestDeclaredColumns(t *testing.T) {
	defs := []dashboard.ColumnDef{
		{Field: "region", Type: "text"},
		{Field: "quantity", Type: "integer"},
	}

	cols := declaredColumns(defs)
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}
	if cols[0].FieldName != "region" || cols[0].Type != domain.ScalarText {
		t.Errorf("unexpected first column: %+v", cols[0])
	}
	if cols[1].FieldName != "quantity" || cols[1].Type != domain.ScalarInteger {
		t.Errorf("unexpected second column: %+v", cols[1])
	}
}
