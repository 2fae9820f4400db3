package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/repository/builder"
)

// PostgresSource fetches view data from Postgres tables.
type PostgresSource struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresSource creates a source backed by the given connection pool.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db, now: time.Now}
}

// Fetch runs the view's query with the active filters applied server-side and
// converts the rows into a result set. A positive limit caps the row count
// for peek fetches.
func (s *PostgresSource) Fetch(ctx context.Context, view *dashboard.ViewDef, filters []domain.Filter, limit int) (*domain.ResultSet, error) {
	b := builder.NewSQLBuilder()
	if len(view.Columns) > 0 {
		fields := make([]string, len(view.Columns))
		for i, c := range view.Columns {
			fields[i] = c.Field
		}
		b.Select(fields...)
	} else {
		b.Select("*")
	}
	b.From(view.Table)

	for _, f := range filters {
		applySQLFilter(b, f, s.now())
	}
	if limit > 0 {
		b.Limit(limit)
	}

	query, args := b.Build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query view %s: %w", view.ID, err)
	}
	defer rows.Close()

	return scanResultSet(rows, view.Columns)
}

// applySQLFilter adds one active filter to the query. Categorical filters
// become IN / NOT IN lists, ranges become bound comparisons, relative-date
// filters become a cutoff comparison when the period label is known.
func applySQLFilter(b *builder.SQLBuilder, f domain.Filter, now time.Time) {
	switch f.Kind {
	case domain.FilterRange:
		if f.Min != nil {
			b.Where(f.Field+" >= ?", *f.Min)
		}
		if f.Max != nil {
			b.Where(f.Field+" <= ?", *f.Max)
		}
	case domain.FilterRelativeDate:
		if cutoff, ok := periodCutoff(f.Period, now); ok {
			b.Where(f.Field+" >= ?", cutoff)
		}
	default:
		if len(f.Values) == 0 {
			return
		}
		vals := make([]interface{}, len(f.Values))
		for i, v := range f.Values {
			vals[i] = v
		}
		if f.Exclude {
			b.WhereNotIn(f.Field, vals...)
		} else {
			b.WhereIn(f.Field, vals...)
		}
	}
}

// scanResultSet converts sql rows into a result set. Declared column types
// take precedence; otherwise the type comes from the driver's reported
// database type name.
func scanResultSet(rows *sql.Rows, declared []dashboard.ColumnDef) (*domain.ResultSet, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read column names: %w", err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	declaredTypes := make(map[string]domain.ScalarType, len(declared))
	for _, c := range declared {
		declaredTypes[c.Field] = domain.ParseScalarType(c.Type)
	}

	columns := make([]domain.Column, len(names))
	for i, name := range names {
		t, ok := declaredTypes[name]
		if !ok {
			t = scalarTypeFromDB(colTypes[i].DatabaseTypeName())
		}
		columns[i] = domain.Column{FieldName: name, Type: t}
	}

	rs := &domain.ResultSet{Columns: columns}
	values := make([]interface{}, len(names))
	ptrs := make([]interface{}, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(domain.Row, len(names))
		for i := range values {
			row[i] = newCell(normalizeDBValue(values[i]), columns[i].Type)
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return rs, nil
}
