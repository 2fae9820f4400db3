package workbook

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

// LayoutTemplate is the YAML-configurable workbook appearance: document
// properties, header behavior and cell styles. Omitted style fields keep
// their defaults.
type LayoutTemplate struct {
	DocTitle     string         `yaml:"doc_title"`
	DocCreator   string         `yaml:"doc_creator"`
	FreezeHeader bool           `yaml:"freeze_header"`
	AutoFilter   bool           `yaml:"auto_filter"`
	HeaderStyle  *StyleTemplate `yaml:"header_style"`
	DataStyle    *StyleTemplate `yaml:"data_style"`
}

// StyleTemplate mirrors CellStyle with YAML tags and optional fields.
type StyleTemplate struct {
	FontName     string   `yaml:"font_name"`
	FontSize     *float64 `yaml:"font_size"`
	FontBold     *bool    `yaml:"font_bold"`
	FontColor    string   `yaml:"font_color"`
	FillColor    string   `yaml:"fill_color"`
	Alignment    string   `yaml:"alignment"`
	BorderStyle  string   `yaml:"border_style"`
	BorderColor  string   `yaml:"border_color"`
	NumberFormat string   `yaml:"number_format"`
}

// LoadTemplate loads a layout template from a YAML file.
func LoadTemplate(path string) (*LayoutTemplate, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template file: %w", err)
	}
	defer file.Close()

	return LoadTemplateFromReader(file)
}

// LoadTemplateFromReader loads a template from an io.Reader.
func LoadTemplateFromReader(r io.Reader) (*LayoutTemplate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	var template LayoutTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("parsing YAML template: %w", err)
	}

	if err := ValidateTemplate(&template); err != nil {
		return nil, fmt.Errorf("validating template: %w", err)
	}

	return &template, nil
}

// LoadTemplateFromString loads a template from a YAML string.
func LoadTemplateFromString(yamlContent string) (*LayoutTemplate, error) {
	return LoadTemplateFromReader(strings.NewReader(yamlContent))
}

var hexColorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ValidateTemplate checks color formats and alignment names.
func ValidateTemplate(t *LayoutTemplate) error {
	if t == nil {
		return fmt.Errorf("template is nil")
	}
	if err := validateStyle(t.HeaderStyle, "header_style"); err != nil {
		return err
	}
	if err := validateStyle(t.DataStyle, "data_style"); err != nil {
		return err
	}
	return nil
}

func validateStyle(s *StyleTemplate, name string) error {
	if s == nil {
		return nil
	}
	for field, color := range map[string]string{
		"font_color":   s.FontColor,
		"fill_color":   s.FillColor,
		"border_color": s.BorderColor,
	} {
		if color != "" && !hexColorPattern.MatchString(color) {
			return fmt.Errorf("%s: invalid %s %q (expected RRGGBB)", name, field, color)
		}
	}
	switch s.Alignment {
	case "", "left", "center", "right":
	default:
		return fmt.Errorf("%s: invalid alignment %q", name, s.Alignment)
	}
	return nil
}

// toCellStyle overlays the template's set fields on a base style.
func (s *StyleTemplate) toCellStyle(base *CellStyle) *CellStyle {
	out := *base
	if s.FontName != "" {
		out.FontName = s.FontName
	}
	if s.FontSize != nil {
		out.FontSize = *s.FontSize
	}
	if s.FontBold != nil {
		out.FontBold = *s.FontBold
	}
	if s.FontColor != "" {
		out.FontColor = s.FontColor
	}
	if s.FillColor != "" {
		out.FillColor = s.FillColor
	}
	if s.Alignment != "" {
		out.Alignment = s.Alignment
	}
	if s.BorderStyle != "" {
		out.BorderStyle = s.BorderStyle
	}
	if s.BorderColor != "" {
		out.BorderColor = s.BorderColor
	}
	if s.NumberFormat != "" {
		out.NumberFormat = s.NumberFormat
	}
	return &out
}
