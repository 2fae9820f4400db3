package dashboard

import (
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
)

// Definition is the YAML description of one dashboard: its views, where
// each view's data lives, and the dashboard-level parameters.
type Definition struct {
	Name       string     `yaml:"name"`
	Views      []ViewDef  `yaml:"views"`
	Parameters []ParamDef `yaml:"parameters"`
}

// ViewDef describes one exportable view. Source selects the backend; the
// table, index and kind fields apply to the matching backend only.
type ViewDef struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Source string `yaml:"source"`

	// postgres
	Table string `yaml:"table"`
	// elasticsearch
	Index string `yaml:"index"`
	// datastore
	Kind string `yaml:"kind"`

	Columns []ColumnDef `yaml:"columns"`
	Filters []FilterDef `yaml:"filters"`
}

// ColumnDef declares a view column and its scalar type.
type ColumnDef struct {
	Field string `yaml:"field"`
	Type  string `yaml:"type"`
}

// FilterDef is the YAML form of a filter initially applied to a view.
type FilterDef struct {
	Field   string   `yaml:"field"`
	Kind    string   `yaml:"kind"`
	Values  []string `yaml:"values"`
	Exclude bool     `yaml:"exclude"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
	Period  string   `yaml:"period"`
}

// ParamDef declares a dashboard-level parameter and its starting value.
type ParamDef struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// sourceNames are the backends a view may bind to.
var sourceNames = map[string]bool{
	"postgres":  true,
	"elastic":   true,
	"datastore": true,
}

// ToFilter converts the YAML filter into its domain form. An omitted kind
// means categorical.
func (f FilterDef) ToFilter() domain.Filter {
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

// ToColumn converts the YAML column into its domain form.
func (c ColumnDef) ToColumn() domain.Column {
	return domain.Column{
		FieldName: c.Field,
		Type:      domain.ParseScalarType(c.Type),
	}
}
