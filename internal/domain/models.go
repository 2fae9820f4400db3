package domain

// ==================== RESULT SET MODEL ====================

// ScalarType is the declared type of a result set column, as reported by the
// backing data source.
type ScalarType string

const (
	ScalarInteger ScalarType = "integer"
	ScalarFloat   ScalarType = "float"
	ScalarBoolean ScalarType = "boolean"
	ScalarDate    ScalarType = "date"
	ScalarText    ScalarType = "text"
	ScalarOther   ScalarType = "other"
)

// ParseScalarType maps a declared type string (YAML definition, database
// metadata) to a ScalarType. Unknown strings map to ScalarOther.
func ParseScalarType(s string) ScalarType {
	switch ScalarType(s) {
	case ScalarInteger, ScalarFloat, ScalarBoolean, ScalarDate, ScalarText:
		return ScalarType(s)
	default:
		return ScalarOther
	}
}

// Role classifies a column for grouping purposes: measures are summed during
// aggregation, dimensions form the grouping key.
type Role string

const (
	RoleDimension Role = "dimension"
	RoleMeasure   Role = "measure"
)

// Column describes one column of a result set.
type Column struct {
	FieldName string     `json:"field_name"`
	Type      ScalarType `json:"type"`
}

// Role derives the column's role from its scalar type. Numeric types are
// measures, everything else (text, date, boolean, unknown) is a dimension.
// The role is never stored so it cannot drift from the declared type.
func (c Column) Role() Role {
	switch c.Type {
	case ScalarInteger, ScalarFloat:
		return RoleMeasure
	default:
		return RoleDimension
	}
}

// Cell is one value of a row: the native value plus the source-formatted
// display string.
type Cell struct {
	Raw     interface{} `json:"raw"`
	Display string      `json:"display"`
}

// Row is an ordered sequence of cells aligned positionally with the result
// set's columns.
type Row []Cell

// ResultSet is the tabular data fetched for one view. It is produced fresh per
// fetch and never mutated; transforms build new matrices from it.
type ResultSet struct {
	Columns []Column
	Rows    []Row
}

// ==================== COLUMN SELECTION ====================

// OutputType is the user-chosen target representation for a selected column.
type OutputType string

const (
	OutputText      OutputType = "text"
	OutputNumber    OutputType = "number"
	OutputShortDate OutputType = "short_date"
	OutputFullDate  OutputType = "full_date"
)

// ParseOutputType maps a request string to an OutputType, defaulting to text.
func ParseOutputType(s string) OutputType {
	switch OutputType(s) {
	case OutputNumber, OutputShortDate, OutputFullDate:
		return OutputType(s)
	default:
		return OutputText
	}
}

// SortDirection orders the optional post-aggregation sort.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// SelectedColumn is one column the user picked for export: the source field it
// resolves against, the header it is written under, and how its values are
// coerced.
type SelectedColumn struct {
	FieldName  string     `json:"field_name"`
	OutputName string     `json:"output_name"`
	OutputType OutputType `json:"output_type"`
}

// ColumnSelection is the per-view export configuration. The sequence order of
// Columns is the output column order. Field names are resolved by name against
// the freshly fetched result set at export time, never by stored index.
type ColumnSelection struct {
	Columns       []SelectedColumn `json:"columns"`
	SortField     string           `json:"sort_field,omitempty"`
	SortDirection SortDirection    `json:"sort_direction,omitempty"`
}

// ExportOptions are the global export toggles.
type ExportOptions struct {
	IncludeDuplicateRows     bool `json:"include_duplicate_rows"`
	IncludeNullDimensionRows bool `json:"include_null_dimension_rows"`
	IncludeFilterSummary     bool `json:"include_filter_summary"`
}

// Aggregate reports whether rows are grouped and summed. Including duplicate
// rows and aggregating are mutually exclusive, so this is derived rather than
// stored.
func (o ExportOptions) Aggregate() bool {
	return !o.IncludeDuplicateRows
}

// ==================== OUTPUT ====================

// OutputMatrix is a finalized table: row 0 holds the header (output names),
// subsequent rows hold formatter outputs (string or float64 cells).
type OutputMatrix [][]interface{}

// Sheet is a workbook-ready table: sanitized name, matrix, and per-column
// width hints.
type Sheet struct {
	Name         string
	Matrix       OutputMatrix
	ColumnWidths []float64
}

// ==================== DASHBOARD MODEL ====================

// View identifies one data view of the dashboard.
type View struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ViewSummary is a view plus the column count discovered by a peek fetch.
// A failed peek degrades ColumnCount to zero and carries the error text.
type ViewSummary struct {
	View
	ColumnCount int    `json:"column_count"`
	Err         string `json:"error,omitempty"`
}

// FilterKind discriminates the filter payload.
type FilterKind string

const (
	FilterCategorical  FilterKind = "categorical"
	FilterRange        FilterKind = "range"
	FilterRelativeDate FilterKind = "relative_date"
)

// Filter is one active filter on a view.
type Filter struct {
	Field   string     `json:"field"`
	Kind    FilterKind `json:"kind"`
	Values  []string   `json:"values,omitempty"`
	Exclude bool       `json:"exclude,omitempty"`
	Min     *float64   `json:"min,omitempty"`
	Max     *float64   `json:"max,omitempty"`
	Period  string     `json:"period,omitempty"`
}

// Parameter is a dashboard-level parameter with its current value.
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ==================== EXPORT REQUEST / RESULT ====================

// ViewExportConfig pairs a view with the user's column selection for it.
type ViewExportConfig struct {
	ViewID    string          `json:"view_id"`
	Selection ColumnSelection `json:"selection"`
}

// ExportRequest is one export run: views in user-selection order plus the
// global toggles.
type ExportRequest struct {
	Views   []ViewExportConfig `json:"views"`
	Options ExportOptions      `json:"options"`
}

// StatusLevel grades a user-visible status message.
type StatusLevel string

const (
	StatusInfo    StatusLevel = "info"
	StatusSuccess StatusLevel = "success"
	StatusWarning StatusLevel = "warning"
	StatusError   StatusLevel = "error"
)

// ExportStatus is one per-view (or run-level) status message.
type ExportStatus struct {
	Level   StatusLevel `json:"level"`
	View    string      `json:"view,omitempty"`
	Message string      `json:"message"`
}

// ExportResult reports a completed export run.
type ExportResult struct {
	FileName   string         `json:"file_name"`
	FilePath   string         `json:"-"`
	SheetCount int            `json:"sheet_count"`
	RowCount   int            `json:"row_count"`
	Statuses   []ExportStatus `json:"statuses"`
}
