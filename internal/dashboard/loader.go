package dashboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// LoadDefinition loads a dashboard definition from a YAML file.
func LoadDefinition(path string) (*Definition, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dashboard definition: %w", err)
	}
	defer file.Close()

	return LoadDefinitionFromReader(file)
}

// LoadDefinitionFromReader loads a definition from an io.Reader.
func LoadDefinitionFromReader(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dashboard definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing dashboard YAML: %w", err)
	}

	if err := ValidateDefinition(&def); err != nil {
		return nil, fmt.Errorf("validating dashboard definition: %w", err)
	}

	return &def, nil
}

// LoadDefinitionFromString loads a definition from a YAML string.
func LoadDefinitionFromString(yamlContent string) (*Definition, error) {
	return LoadDefinitionFromReader(strings.NewReader(yamlContent))
}

// ValidateDefinition checks the definition's structural rules.
func ValidateDefinition(def *Definition) error {
	if def == nil {
		return fmt.Errorf("definition is nil")
	}
	if def.Name == "" {
		return fmt.Errorf("dashboard name is required")
	}
	if len(def.Views) == 0 {
		return fmt.Errorf("dashboard must declare at least one view")
	}

	ids := make(map[string]bool)
	for i, view := range def.Views {
		if err := validateView(&view, i); err != nil {
			return err
		}
		if ids[view.ID] {
			return fmt.Errorf("view[%d]: duplicate view id %q", i, view.ID)
		}
		ids[view.ID] = true
	}

	names := make(map[string]bool)
	for i, p := range def.Parameters {
		if p.Name == "" {
			return fmt.Errorf("parameter[%d]: name is required", i)
		}
		if names[p.Name] {
			return fmt.Errorf("parameter[%d]: duplicate parameter %q", i, p.Name)
		}
		names[p.Name] = true
	}

	return nil
}

func validateView(v *ViewDef, index int) error {
	if v.ID == "" {
		return fmt.Errorf("view[%d]: id is required", index)
	}
	if v.Name == "" {
		return fmt.Errorf("view[%d] %q: name is required", index, v.ID)
	}
	if !sourceNames[v.Source] {
		return fmt.Errorf("view[%d] %q: unknown source %q", index, v.ID, v.Source)
	}

	switch v.Source {
	case "postgres":
		if v.Table == "" {
			return fmt.Errorf("view[%d] %q: postgres views need a table", index, v.ID)
		}
	case "elastic":
		if v.Index == "" {
			return fmt.Errorf("view[%d] %q: elastic views need an index", index, v.ID)
		}
	case "datastore":
		if v.Kind == "" {
			return fmt.Errorf("view[%d] %q: datastore views need a kind", index, v.ID)
		}
	}

	fields := make(map[string]bool)
	for j, col := range v.Columns {
		if col.Field == "" {
			return fmt.Errorf("view[%d] %q column[%d]: field is required", index, v.ID, j)
		}
		if fields[col.Field] {
			return fmt.Errorf("view[%d] %q: duplicate column field %q", index, v.ID, col.Field)
		}
		fields[col.Field] = true
	}

	for j, f := range v.Filters {
		if f.Field == "" {
			return fmt.Errorf("view[%d] %q filter[%d]: field is required", index, v.ID, j)
		}
		switch f.Kind {
		case "", "categorical", "range", "relative_date":
		default:
			return fmt.Errorf("view[%d] %q filter[%d]: unknown kind %q", index, v.ID, j, f.Kind)
		}
	}

	return nil
}
