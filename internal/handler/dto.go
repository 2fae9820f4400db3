package handler

import (
	"sort"
	"strings"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// DashboardResponse is the selection surface: the dashboard name plus the
// view summaries the panel lists.
type DashboardResponse struct {
	Name  string               `json:"name"`
	Views []domain.ViewSummary `json:"views"`
}

// ColumnItemDTO is one picked column. Position carries the user's output
// order, which may differ from the array order the panel sends.
type ColumnItemDTO struct {
	FieldName  string `json:"field_name"`
	OutputName string `json:"output_name"`
	OutputType string `json:"output_type"`
	Position   int    `json:"position"`
}

// ViewExportDTO is one view's selection within an export request.
type ViewExportDTO struct {
	ViewID        string          `json:"view_id"`
	Columns       []ColumnItemDTO `json:"columns"`
	SortField     string          `json:"sort_field"`
	SortDirection string          `json:"sort_direction"`
}

// ExportOptionsDTO carries the global export toggles.
type ExportOptionsDTO struct {
	IncludeDuplicateRows     bool `json:"include_duplicate_rows"`
	IncludeNullDimensionRows bool `json:"include_null_dimension_rows"`
	IncludeFilterSummary     bool `json:"include_filter_summary"`
}

// ExportRequestDTO is the export request body.
type ExportRequestDTO struct {
	Views   []ViewExportDTO  `json:"views"`
	Options ExportOptionsDTO `json:"options"`
}

// ToDomain converts the request into its domain form, ordering each view's
// columns by position.
func (r ExportRequestDTO) ToDomain() domain.ExportRequest {
	req := domain.ExportRequest{
		Options: domain.ExportOptions{
			IncludeDuplicateRows:     r.Options.IncludeDuplicateRows,
			IncludeNullDimensionRows: r.Options.IncludeNullDimensionRows,
			IncludeFilterSummary:     r.Options.IncludeFilterSummary,
		},
	}
	for _, v := range r.Views {
		req.Views = append(req.Views, domain.ViewExportConfig{
			ViewID:    v.ViewID,
			Selection: v.toSelection(),
		})
	}
	return req
}

func (v ViewExportDTO) toSelection() domain.ColumnSelection {
	items := append([]ColumnItemDTO(nil), v.Columns...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	sel := domain.ColumnSelection{
		SortField:     v.SortField,
		SortDirection: parseSortDirection(v.SortDirection),
	}
	for _, item := range items {
		name := item.OutputName
		if name == "" {
			name = item.FieldName
		}
		sel.Columns = append(sel.Columns, domain.SelectedColumn{
			FieldName:  item.FieldName,
			OutputName: name,
			OutputType: domain.ParseOutputType(item.OutputType),
		})
	}
	return sel
}

func parseSortDirection(s string) domain.SortDirection {
	if strings.EqualFold(s, string(domain.SortDescending)) {
		return domain.SortDescending
	}
	return domain.SortAscending
}

// FilterDTO mirrors domain.Filter for event payloads.
type FilterDTO struct {
	Field   string   `json:"field"`
	Kind    string   `json:"kind"`
	Values  []string `json:"values"`
	Exclude bool     `json:"exclude"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Period  string   `json:"period"`
}

// ToFilter converts the event filter into its domain form. An omitted kind
// means categorical.
func (f FilterDTO) ToFilter() domain.Filter {
	kind := domain.FilterKind(f.Kind)
	if f.Kind == "" {
		kind = domain.FilterCategorical
	}
	return domain.Filter{
		Field:   f.Field,
		Kind:    kind,
		Values:  append([]string(nil), f.Values...),
		Exclude: f.Exclude,
		Min:     f.Min,
		Max:     f.Max,
		Period:  f.Period,
	}
}

// FilterChangedDTO is the filter change event body. The filters replace the
// view's active set; an empty list clears it.
type FilterChangedDTO struct {
	ViewID  string      `json:"view_id"`
	Filters []FilterDTO `json:"filters"`
}

// ParameterChangedDTO is the parameter change event body.
type ParameterChangedDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
