package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/logger"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/session"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/transform"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/pkg/workbook"
)

// ExportService runs export requests: one sheet per selected view, fetched
// fresh, transformed per the user's column selection, plus the optional
// filter summary sheet.
type ExportService struct {
	reader    domain.ViewReader
	cache     *session.ColumnCache
	exportDir string
	template  *workbook.LayoutTemplate
	now       func() time.Time
}

// NewExportService creates a new ExportService instance. The template may be
// nil, in which case workbooks use the writer defaults.
func NewExportService(reader domain.ViewReader, cache *session.ColumnCache, exportDir string, template *workbook.LayoutTemplate) *ExportService {
	return &ExportService{
		reader:    reader,
		cache:     cache,
		exportDir: exportDir,
		template:  template,
		now:       time.Now,
	}
}

// Export processes the request one view at a time in request order. Per-view
// failures become statuses and processing continues; the export as a whole
// fails only when no sheet at all could be produced or the workbook cannot
// be written.
func (es *ExportService) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResult, error) {
	if len(req.Views) == 0 {
		return nil, fmt.Errorf("no views selected")
	}

	// Stale column lists must not leak into this run; every view below is
	// fetched fresh.
	es.cache.Clear()
	logger.InfoLog(ctx, "Starting export of %d views", len(req.Views))

	opts := []workbook.Option{
		workbook.WithDocProps(es.reader.DashboardName(), "exportgateway"),
		workbook.WithFreezeHeader(),
		workbook.WithAutoFilter(),
	}
	if es.template != nil {
		opts = append(opts, workbook.WithTemplate(es.template))
	}
	w := workbook.NewWriter(opts...)
	defer w.Close()

	viewNames := make(map[string]string)
	for _, v := range es.reader.ListViews() {
		viewNames[v.ID] = v.Name
	}

	var statuses []domain.ExportStatus
	usedNames := make(map[string]bool)
	totalRows := 0

	for _, vc := range req.Views {
		name, ok := viewNames[vc.ViewID]
		if !ok {
			statuses = append(statuses, domain.ExportStatus{
				Level:   domain.StatusError,
				View:    vc.ViewID,
				Message: "view not found",
			})
			continue
		}

		rows, viewStatuses := es.exportView(ctx, w, name, vc, req.Options, usedNames)
		statuses = append(statuses, viewStatuses...)
		totalRows += rows
	}

	if req.Options.IncludeFilterSummary {
		if err := es.appendFilterSummary(w, req, viewNames, usedNames); err != nil {
			statuses = append(statuses, domain.ExportStatus{
				Level:   domain.StatusWarning,
				Message: fmt.Sprintf("filter summary sheet failed: %v", err),
			})
		}
	}

	if w.SheetCount() == 0 {
		return nil, fmt.Errorf("export produced no sheets: %s", firstProblem(statuses))
	}

	fileName := exportFileName(es.now())
	if err := os.MkdirAll(es.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(es.exportDir, fileName)
	if err := w.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}

	statuses = append(statuses, domain.ExportStatus{
		Level:   domain.StatusSuccess,
		Message: fmt.Sprintf("Workbook saved as %s", fileName),
	})
	logger.InfoLog(ctx, "Export completed: %s (%d sheets, %d data rows)", fileName, w.SheetCount(), totalRows)

	return &domain.ExportResult{
		FileName:   fileName,
		FilePath:   path,
		SheetCount: w.SheetCount(),
		RowCount:   totalRows,
		Statuses:   statuses,
	}, nil
}

// exportView fetches, transforms and appends one view. It returns the body
// row count and the statuses the view produced.
func (es *ExportService) exportView(ctx context.Context, w *workbook.Writer, name string, vc domain.ViewExportConfig, options domain.ExportOptions, usedNames map[string]bool) (int, []domain.ExportStatus) {
	var statuses []domain.ExportStatus

	rs, err := es.reader.FetchResultSet(ctx, vc.ViewID, 0)
	if err != nil {
		logger.WarnLog(ctx, "Fetch failed for view %s: %v", vc.ViewID, err)
		return 0, append(statuses, domain.ExportStatus{
			Level:   domain.StatusError,
			View:    name,
			Message: fmt.Sprintf("fetch failed: %v", err),
		})
	}
	es.cache.Put(vc.ViewID, rs.Columns)

	matrix, missing, err := transform.BuildMatrix(rs, vc.Selection, options)
	if err != nil {
		if errors.Is(err, transform.ErrNoColumnsResolved) {
			return 0, append(statuses, domain.ExportStatus{
				Level:   domain.StatusWarning,
				View:    name,
				Message: "no selected columns found in the current data; view skipped",
			})
		}
		return 0, append(statuses, domain.ExportStatus{
			Level:   domain.StatusError,
			View:    name,
			Message: fmt.Sprintf("transform failed: %v", err),
		})
	}
	for _, field := range missing {
		logger.WarnLog(ctx, "Column %q not found in view %s, dropped from output", field, vc.ViewID)
		statuses = append(statuses, domain.ExportStatus{
			Level:   domain.StatusWarning,
			View:    name,
			Message: fmt.Sprintf("column %q not found in the current data; dropped", field),
		})
	}

	if col, out, ok := sortPosition(vc.Selection, missing); ok {
		matrix = transform.SortMatrix(matrix, col, vc.Selection.SortDirection, out)
	}

	sheet := transform.AssembleSheet(name, matrix)
	sheetName := uniqueSheetName(usedNames, sheet.Name)
	if err := w.AddTable(workbook.Table{
		Name:         sheetName,
		Rows:         sheet.Matrix,
		ColumnWidths: sheet.ColumnWidths,
	}); err != nil {
		return 0, append(statuses, domain.ExportStatus{
			Level:   domain.StatusError,
			View:    name,
			Message: fmt.Sprintf("sheet append failed: %v", err),
		})
	}

	bodyRows := len(matrix) - 1
	if bodyRows < 0 {
		bodyRows = 0
	}
	statuses = append(statuses, domain.ExportStatus{
		Level:   domain.StatusSuccess,
		View:    name,
		Message: fmt.Sprintf("%d rows exported", bodyRows),
	})
	return bodyRows, statuses
}

// appendFilterSummary adds the filter summary sheet, listing each selected
// view's active filters in request order.
func (es *ExportService) appendFilterSummary(w *workbook.Writer, req domain.ExportRequest, viewNames map[string]string, usedNames map[string]bool) error {
	var viewFilters []transform.ViewFilters
	for _, vc := range req.Views {
		name, ok := viewNames[vc.ViewID]
		if !ok {
			continue
		}
		filters := es.reader.ActiveFilters(vc.ViewID)
		if len(filters) == 0 {
			continue
		}
		viewFilters = append(viewFilters, transform.ViewFilters{ViewName: name, Filters: filters})
	}

	matrix := transform.BuildFilterSummary(es.reader.DashboardName(), es.now().UTC(), viewFilters, es.reader.Parameters())
	sheet := transform.AssembleSheet("Filter Summary", matrix)
	return w.AddTable(workbook.Table{
		Name:         uniqueSheetName(usedNames, sheet.Name),
		Rows:         sheet.Matrix,
		ColumnWidths: sheet.ColumnWidths,
		Headerless:   true,
	})
}

// ExportFilePath resolves a produced workbook's on-disk path for download.
// Only base names of existing exports are accepted.
func (es *ExportService) ExportFilePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || filepath.Ext(name) != ".xlsx" {
		return "", fmt.Errorf("invalid export file name")
	}
	path := filepath.Join(es.exportDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("export file not found: %w", err)
	}
	return path, nil
}

// sortPosition maps the selection's sort field to its output column index,
// skipping columns that failed to resolve. Reports false when the view has
// no usable sort.
func sortPosition(sel domain.ColumnSelection, missing []string) (int, domain.OutputType, bool) {
	if sel.SortField == "" {
		return 0, "", false
	}
	missingSet := make(map[string]bool, len(missing))
	for _, field := range missing {
		missingSet[field] = true
	}

	pos := 0
	for _, col := range sel.Columns {
		if missingSet[col.FieldName] {
			continue
		}
		if col.FieldName == sel.SortField {
			return pos, col.OutputType, true
		}
		pos++
	}
	return 0, "", false
}

// uniqueSheetName disambiguates duplicate sheet names with a numeric suffix,
// keeping the result within the 31-character sheet name limit.
func uniqueSheetName(used map[string]bool, name string) string {
	if !used[name] {
		used[name] = true
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		base := name
		if runes := []rune(base); len(runes)+len(suffix) > 31 {
			base = string(runes[:31-len(suffix)])
		}
		candidate := base + suffix
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

// exportFileName builds the timestamped workbook name, replacing characters
// file systems reject in the ISO instant.
func exportFileName(now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15:04:05.000")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "Export_" + stamp + "Z.xlsx"
}

// firstProblem returns the first non-success status message for error
// summaries.
func firstProblem(statuses []domain.ExportStatus) string {
	for _, s := range statuses {
		if s.Level == domain.StatusError || s.Level == domain.StatusWarning {
			if s.View != "" {
				return fmt.Sprintf("%s: %s", s.View, s.Message)
			}
			return s.Message
		}
	}
	return "nothing to export"
}
