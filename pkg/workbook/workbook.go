package workbook

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Writer accumulates tables into an xlsx workbook, one sheet per table.
type Writer struct {
	file       *excelize.File
	cfg        *Config
	sheetCount int
	usedNames  map[string]bool

	headerStyleID int
	dataStyleID   int
	stylesReady   bool
}

// NewWriter creates an empty workbook writer.
func NewWriter(opts ...Option) *Writer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Writer{
		file:      excelize.NewFile(),
		cfg:       cfg,
		usedNames: make(map[string]bool),
	}
}

// AddTable appends one sheet holding the table's rows. The first table
// renames the workbook's default sheet, later tables create new ones. Sheet
// names must already be sanitized; a repeated name is rejected because
// excelize would silently write into the existing sheet.
func (w *Writer) AddTable(t Table) error {
	if t.Name == "" {
		return fmt.Errorf("table needs a sheet name")
	}
	if w.usedNames[t.Name] {
		return fmt.Errorf("duplicate sheet name %s", t.Name)
	}

	if w.sheetCount == 0 {
		if err := w.file.SetSheetName("Sheet1", t.Name); err != nil {
			return fmt.Errorf("renaming first sheet to %s: %w", t.Name, err)
		}
	} else {
		if _, err := w.file.NewSheet(t.Name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", t.Name, err)
		}
	}
	w.usedNames[t.Name] = true
	w.sheetCount++

	if err := w.ensureStyles(); err != nil {
		return err
	}

	hasHeader := w.cfg.HeaderRow && !t.Headerless

	for rowIdx, row := range t.Rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("cell coordinates (%d,%d): %w", colIdx+1, rowIdx+1, err)
			}
			if err := w.file.SetCellValue(t.Name, cell, value); err != nil {
				return fmt.Errorf("setting cell %s: %w", cell, err)
			}

			styleID := w.dataStyleID
			if hasHeader && rowIdx == 0 {
				styleID = w.headerStyleID
			}
			if styleID != 0 {
				if err := w.file.SetCellStyle(t.Name, cell, cell, styleID); err != nil {
					return fmt.Errorf("styling cell %s: %w", cell, err)
				}
			}
		}
	}

	for i, width := range t.ColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name for %d: %w", i+1, err)
		}
		if err := w.file.SetColWidth(t.Name, col, col, width); err != nil {
			return fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	if hasHeader && w.cfg.FreezeHeader && len(t.Rows) > 0 {
		if err := w.file.SetPanes(t.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freezing header row: %w", err)
		}
	}

	if hasHeader && w.cfg.AutoFilter && len(t.Rows) > 1 {
		lastCol, err := excelize.ColumnNumberToName(len(t.Rows[0]))
		if err != nil {
			return fmt.Errorf("autofilter column name: %w", err)
		}
		filterRange := fmt.Sprintf("A1:%s1", lastCol)
		if err := w.file.AutoFilter(t.Name, filterRange, []excelize.AutoFilterOptions{}); err != nil {
			return fmt.Errorf("setting auto filter: %w", err)
		}
	}

	return nil
}

// SheetCount reports how many tables have been added.
func (w *Writer) SheetCount() int {
	return w.sheetCount
}

// SaveAs finalizes the workbook and writes it to a file path.
func (w *Writer) SaveAs(path string) error {
	if err := w.finalize(); err != nil {
		return err
	}
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// Write finalizes the workbook and streams it to the writer.
func (w *Writer) Write(out io.Writer) error {
	if err := w.finalize(); err != nil {
		return err
	}
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteToBuffer finalizes the workbook and returns its bytes.
func (w *Writer) WriteToBuffer() (*bytes.Buffer, error) {
	if err := w.finalize(); err != nil {
		return nil, err
	}
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("buffering workbook: %w", err)
	}
	return buf, nil
}

// Close releases the underlying file resources.
func (w *Writer) Close() error {
	return w.file.Close()
}

func (w *Writer) finalize() error {
	if w.sheetCount == 0 {
		return fmt.Errorf("workbook has no sheets")
	}
	w.file.SetActiveSheet(0)

	if w.cfg.DocTitle != "" || w.cfg.DocCreator != "" {
		if err := w.file.SetDocProps(&excelize.DocProperties{
			Title:   w.cfg.DocTitle,
			Creator: w.cfg.DocCreator,
		}); err != nil {
			return fmt.Errorf("setting document properties: %w", err)
		}
	}
	return nil
}

// ensureStyles lazily registers the configured styles with the file.
func (w *Writer) ensureStyles() error {
	if w.stylesReady {
		return nil
	}

	var err error
	if w.cfg.HeaderStyle != nil {
		w.headerStyleID, err = buildStyle(w.file, w.cfg.HeaderStyle)
		if err != nil {
			return fmt.Errorf("creating header style: %w", err)
		}
	}
	if w.cfg.DataStyle != nil {
		w.dataStyleID, err = buildStyle(w.file, w.cfg.DataStyle)
		if err != nil {
			return fmt.Errorf("creating data style: %w", err)
		}
	}
	w.stylesReady = true
	return nil
}
