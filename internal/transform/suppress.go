package transform

import (
	"strings"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// ==================== ROW SUPPRESSION ====================
// Summary feeds often carry implicit subtotal rows (one or more dimension
// cells blank) and explicit "Total" label rows. Left in place they double the
// measure sums after aggregation, so they are dropped by default. The blank
// check is deliberately broad and will also drop sparse-but-legitimate rows;
// the includeNulls toggle turns it off.

// blankDimensionValues are display strings that count as a missing dimension.
var blankDimensionValues = map[string]bool{
	"":        true,
	"null":    true,
	"(null)":  true,
	"(blank)": true,
}

var totalLabels = map[string]bool{
	"total":       true,
	"grand total": true,
}

// ShouldDropRow classifies one raw row. dimIdx and measIdx are the result set
// positions of the selected dimension and measure columns.
//
// Rules, in order: a row with no non-empty measure value is always kept (there
// is no aggregate for it to corrupt); a row whose dimension matches a total
// label is always dropped; with includeNulls set nothing further is dropped;
// otherwise any blank dimension value drops the row, which also covers mixed
// rows where only some dimensions are populated.
func ShouldDropRow(row domain.Row, dimIdx, measIdx []int, includeNulls bool) bool {
	if !hasMeasureValue(row, measIdx) {
		return false
	}

	for _, i := range dimIdx {
		if totalLabels[normalizeDisplay(cellAt(row, i))] {
			return true
		}
	}

	if includeNulls {
		return false
	}

	for _, i := range dimIdx {
		if blankDimensionValues[normalizeDisplay(cellAt(row, i))] {
			return true
		}
	}
	return false
}

func hasMeasureValue(row domain.Row, measIdx []int) bool {
	for _, i := range measIdx {
		c := cellAt(row, i)
		if c.Raw != nil || strings.TrimSpace(c.Display) != "" {
			return true
		}
	}
	return false
}

func normalizeDisplay(c domain.Cell) string {
	return strings.ToLower(strings.TrimSpace(c.Display))
}

// cellAt guards against ragged rows shorter than the column list.
func cellAt(row domain.Row, idx int) domain.Cell {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return domain.Cell{}
}
