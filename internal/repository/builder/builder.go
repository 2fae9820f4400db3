package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct SQL queries dynamically.
type SQLBuilder struct {
	table      string
	columns    []string
	values     []interface{}
	where      []string
	args       []interface{}
	joins      []string
	orderBy    []string
	limit      int
	offset     int
	updateCols []string
	isInsert   bool
	isUpdate   bool
	isDelete   bool
	isSelect   bool
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.isUpdate = true
	b.table = table
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set specifies the columns and values for update.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.updateCols = append(b.updateCols, col)
	b.args = append(b.args, val)
	return b
}

// Values specifies the values for insertion.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	b.args = append(b.args, vals...)
	return b
}

// Where adds a condition, ANDed with any previous ones. Placeholders are
// written as "?" and rewritten to PostgreSQL's $n form by Build.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.args = append(b.args, args...)
	return b
}

// WhereIn adds a "col IN (...)" condition. No values means no condition.
func (b *SQLBuilder) WhereIn(col string, vals ...interface{}) *SQLBuilder {
	return b.whereList(col, "IN", vals)
}

// WhereNotIn adds a "col NOT IN (...)" condition. No values means no
// condition.
func (b *SQLBuilder) WhereNotIn(col string, vals ...interface{}) *SQLBuilder {
	return b.whereList(col, "NOT IN", vals)
}

func (b *SQLBuilder) whereList(col, op string, vals []interface{}) *SQLBuilder {
	if len(vals) == 0 {
		return b
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(vals)), ", ")
	b.where = append(b.where, fmt.Sprintf("%s %s (%s)", col, op, marks))
	b.args = append(b.args, vals...)
	return b
}

// Join adds a JOIN clause.
func (b *SQLBuilder) Join(joinType, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on))
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds an OFFSET clause.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder

	if b.isSelect {
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		for _, join := range b.joins {
			sb.WriteString(" ")
			sb.WriteString(join)
		}
	} else if b.isInsert {
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		return sb.String(), b.args
	} else if b.isUpdate {
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.updateCols))
		for i, col := range b.updateCols {
			setClauses[i] = fmt.Sprintf("%s = $%d", col, i+1)
		}
		sb.WriteString(strings.Join(setClauses, ", "))
	} else if b.isDelete {
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")

		// Set clauses consumed the leading placeholders of an update.
		argIndex := len(b.updateCols) + 1

		whereClause := strings.Join(b.where, " AND ")
		parts := strings.Split(whereClause, "?")
		for i, part := range parts {
			sb.WriteString(part)
			if i < len(parts)-1 {
				sb.WriteString(fmt.Sprintf("$%d", argIndex))
				argIndex++
			}
		}
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}

	if b.offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
	}

	return sb.String(), b.args
}

// BuildSafe constructs the final SQL string and arguments, failing when the
// number of placeholders does not match the number of arguments.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	sql, args := b.Build()

	for i := 1; i <= len(args); i++ {
		if !strings.Contains(sql, fmt.Sprintf("$%d", i)) {
			return "", nil, fmt.Errorf("placeholder $%d missing for %d arguments", i, len(args))
		}
	}
	if strings.Contains(sql, fmt.Sprintf("$%d", len(args)+1)) {
		return "", nil, fmt.Errorf("more placeholders than the %d arguments", len(args))
	}

	return sql, args, nil
}
