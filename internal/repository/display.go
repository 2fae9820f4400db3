package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// newCell pairs a native value with its rendered display string. The display
// string is what the dashboard would have shown for the cell, so downstream
// formatting and grouping see source-shaped text.
func newCell(v interface{}, t domain.ScalarType) domain.Cell {
	return domain.Cell{Raw: v, Display: renderDisplay(v, t)}
}

func renderDisplay(v interface{}, t domain.ScalarType) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return displayTime(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(v)
	}
}

// displayTime renders month-grain dates as "January 2006" so month columns
// group and reformat by month; anything finer keeps the full calendar day.
func displayTime(t time.Time) string {
	if t.Day() == 1 && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("January 2006")
	}
	return t.Format("2006-01-02")
}

// normalizeDBValue maps driver-specific scan results to plain Go values.
// lib/pq returns []byte for several column types.
func normalizeDBValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// scalarTypeFromDB maps a database type name from sql.ColumnType to the
// scalar type used for column classification.
func scalarTypeFromDB(dbType string) domain.ScalarType {
	switch strings.ToUpper(dbType) {
	case "INT2", "INT4", "INT8", "SMALLINT", "INT", "INTEGER", "BIGINT", "SERIAL", "BIGSERIAL":
		return domain.ScalarInteger
	case "FLOAT4", "FLOAT8", "REAL", "DOUBLE PRECISION", "NUMERIC", "DECIMAL", "MONEY":
		return domain.ScalarFloat
	case "BOOL", "BOOLEAN":
		return domain.ScalarBoolean
	case "DATE", "TIMESTAMP", "TIMESTAMPTZ", "TIME", "TIMETZ":
		return domain.ScalarDate
	case "TEXT", "VARCHAR", "CHAR", "BPCHAR", "NAME", "UUID":
		return domain.ScalarText
	default:
		return domain.ScalarOther
	}
}

// periodCutoff resolves a relative-date period label to its start time.
// Unknown labels return false and leave the data unfiltered.
func periodCutoff(period string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(strings.TrimSpace(period))
	switch lower {
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case "this year", "year to date":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}

	var n int
	if _, err := fmt.Sscanf(lower, "last %d days", &n); err == nil && n > 0 {
		return now.AddDate(0, 0, -n), true
	}
	if _, err := fmt.Sscanf(lower, "last %d months", &n); err == nil && n > 0 {
		return now.AddDate(0, -n, 0), true
	}
	return time.Time{}, false
}

// declaredColumns converts a view's declared column list to result set
// columns, preserving declaration order.
func declaredColumns(defs []dashboard.ColumnDef) []domain.Column {
	cols := make([]domain.Column, len(defs))
	for i, d := range defs {
		cols[i] = d.ToColumn()
	}
	return cols
}
