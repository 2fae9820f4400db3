package transform

import (
	"strings"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// ==================== SHEET ASSEMBLY ====================

const (
	maxSheetNameLength = 31
	minColumnWidth     = 10
	maxColumnWidth     = 50
)

// sheetNameSanitizer swaps the characters Excel forbids in sheet names.
var sheetNameSanitizer = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	"?", "_",
	"*", "_",
	"[", "_",
	"]", "_",
)

// SanitizeSheetName replaces forbidden characters with underscores and
// truncates the result to the 31-character sheet name limit.
func SanitizeSheetName(name string) string {
	clean := sheetNameSanitizer.Replace(name)
	runes := []rune(clean)
	if len(runes) > maxSheetNameLength {
		return string(runes[:maxSheetNameLength])
	}
	return clean
}

// ColumnWidths sizes each column to its longest rendered value, clamped to
// a readable range. Ragged rows contribute only to the columns they have.
func ColumnWidths(m domain.OutputMatrix) []float64 {
	cols := 0
	for _, row := range m {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for _, row := range m {
		for i, v := range row {
			w := float64(len([]rune(renderValue(v))))
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

// AssembleSheet names and sizes a finished matrix for the workbook writer.
func AssembleSheet(name string, m domain.OutputMatrix) domain.Sheet {
	return domain.Sheet{
		Name:         SanitizeSheetName(name),
		Matrix:       m,
		ColumnWidths: ColumnWidths(m),
	}
}
