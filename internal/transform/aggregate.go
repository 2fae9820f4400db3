package transform

import (
	"errors"
	"strings"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// ==================== MATRIX BUILD ====================

// ErrNoColumnsResolved signals that none of a selection's field names exist in
// the fetched result set. The view is skipped rather than exported empty.
var ErrNoColumnsResolved = errors.New("no selected columns resolved against result set")

// groupKeySeparator joins tuple members without colliding with cell content.
const groupKeySeparator = "\x1f"

type resolvedColumn struct {
	sel  domain.SelectedColumn
	idx  int
	role domain.Role
}

// resolveSelection matches a selection's field names against the result set by
// name. Columns whose names no longer exist (the result set is refetched per
// export, so filter changes can alter its structure) are returned in the
// missing slice and excluded from output.
func resolveSelection(rs *domain.ResultSet, sel domain.ColumnSelection) (resolved []resolvedColumn, missing []string) {
	byName := make(map[string]int, len(rs.Columns))
	for i, c := range rs.Columns {
		byName[c.FieldName] = i
	}
	for _, sc := range sel.Columns {
		i, ok := byName[sc.FieldName]
		if !ok {
			missing = append(missing, sc.FieldName)
			continue
		}
		resolved = append(resolved, resolvedColumn{sel: sc, idx: i, role: rs.Columns[i].Role()})
	}
	return resolved, missing
}

// BuildMatrix turns a fresh result set into the output matrix for one sheet:
// selection resolution, row suppression, then grouping, deduplication or
// passthrough depending on the options and the dimension/measure split. The
// header row carries the output names in selection order. Returned diagnostics
// list selected field names absent from the result set.
func BuildMatrix(rs *domain.ResultSet, sel domain.ColumnSelection, opts domain.ExportOptions) (domain.OutputMatrix, []string, error) {
	resolved, missing := resolveSelection(rs, sel)
	if len(resolved) == 0 {
		return nil, missing, ErrNoColumnsResolved
	}

	var dimIdx, measIdx []int
	for _, rc := range resolved {
		if rc.role == domain.RoleMeasure {
			measIdx = append(measIdx, rc.idx)
		} else {
			dimIdx = append(dimIdx, rc.idx)
		}
	}

	var surviving []domain.Row
	for _, row := range rs.Rows {
		if !ShouldDropRow(row, dimIdx, measIdx, opts.IncludeNullDimensionRows) {
			surviving = append(surviving, row)
		}
	}

	header := make([]interface{}, len(resolved))
	for i, rc := range resolved {
		header[i] = rc.sel.OutputName
	}
	matrix := domain.OutputMatrix{header}

	switch {
	case opts.Aggregate() && len(dimIdx) > 0 && len(measIdx) > 0:
		matrix = append(matrix, groupAndSum(surviving, resolved)...)
	case opts.Aggregate():
		// All-dimension or all-measure selection: nothing to group by (or
		// nothing to sum), so collapse exact duplicates instead.
		matrix = append(matrix, dedupeRows(surviving, resolved)...)
	default:
		for _, row := range surviving {
			matrix = append(matrix, formatRow(row, resolved))
		}
	}
	return matrix, missing, nil
}

// groupAndSum groups rows by the tuple of dimension display values and sums
// each measure. Groups are emitted in first-encounter order of their key;
// ordering beyond that is the sort stage's job.
func groupAndSum(rows []domain.Row, resolved []resolvedColumn) [][]interface{} {
	type group struct {
		first domain.Row
		sums  []float64
	}
	groups := make(map[string]*group)
	var order []string

	for _, row := range rows {
		key := dimensionKey(row, resolved)
		g, ok := groups[key]
		if !ok {
			g = &group{first: row, sums: make([]float64, len(resolved))}
			groups[key] = g
			order = append(order, key)
		}
		for i, rc := range resolved {
			if rc.role == domain.RoleMeasure {
				g.sums[i] += numericCellValue(cellAt(row, rc.idx))
			}
		}
	}

	out := make([][]interface{}, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rowOut := make([]interface{}, len(resolved))
		for i, rc := range resolved {
			if rc.role == domain.RoleMeasure {
				rowOut[i] = FormatValue(g.sums[i], formatFloat(g.sums[i]), rc.sel.OutputType)
			} else {
				c := cellAt(g.first, rc.idx)
				rowOut[i] = FormatValue(c.Raw, c.Display, rc.sel.OutputType)
			}
		}
		out = append(out, rowOut)
	}
	return out
}

// dedupeRows keeps the first occurrence of each fully formatted row tuple.
func dedupeRows(rows []domain.Row, resolved []resolvedColumn) [][]interface{} {
	seen := make(map[string]bool)
	var out [][]interface{}
	for _, row := range rows {
		formatted := formatRow(row, resolved)
		parts := make([]string, len(formatted))
		for i, v := range formatted {
			parts[i] = renderValue(v)
		}
		key := strings.Join(parts, groupKeySeparator)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, formatted)
	}
	return out
}

func formatRow(row domain.Row, resolved []resolvedColumn) []interface{} {
	out := make([]interface{}, len(resolved))
	for i, rc := range resolved {
		c := cellAt(row, rc.idx)
		out[i] = FormatValue(c.Raw, c.Display, rc.sel.OutputType)
	}
	return out
}

func dimensionKey(row domain.Row, resolved []resolvedColumn) string {
	var parts []string
	for _, rc := range resolved {
		if rc.role == domain.RoleDimension {
			parts = append(parts, cellAt(row, rc.idx).Display)
		}
	}
	return strings.Join(parts, groupKeySeparator)
}

// numericCellValue reads a measure cell for summing: native numerics first,
// then the display string, with parse failure coerced to zero.
func numericCellValue(c domain.Cell) float64 {
	switch v := c.Raw.(type) {
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
	if f, err := parseFloat(c.Display); err == nil {
		return f
	}
	return 0
}
