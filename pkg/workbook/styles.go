package workbook

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellStyle is the workbook-agnostic description of a cell's appearance.
type CellStyle struct {
	FontName      string
	FontSize      float64
	FontBold      bool
	FontItalic    bool
	FontColor     string
	FillColor     string
	Alignment     string
	VerticalAlign string
	BorderStyle   string
	BorderColor   string
	NumberFormat  string
	WrapText      bool
}

// StyleBuilder provides a fluent API for building cell styles.
type StyleBuilder struct {
	style *CellStyle
}

// NewStyleBuilder creates a new style builder with default values.
func NewStyleBuilder() *StyleBuilder {
	return &StyleBuilder{
		style: &CellStyle{
			FontName:      "Arial",
			FontSize:      10,
			Alignment:     "left",
			VerticalAlign: "middle",
		},
	}
}

// Font sets the font name and size.
func (b *StyleBuilder) Font(name string, size float64) *StyleBuilder {
	b.style.FontName = name
	b.style.FontSize = size
	return b
}

// Bold sets the font to bold.
func (b *StyleBuilder) Bold() *StyleBuilder {
	b.style.FontBold = true
	return b
}

// FontColor sets the font color (hex format).
func (b *StyleBuilder) FontColor(color string) *StyleBuilder {
	b.style.FontColor = color
	return b
}

// Fill sets the cell background color.
func (b *StyleBuilder) Fill(color string) *StyleBuilder {
	b.style.FillColor = color
	return b
}

// Align sets the horizontal alignment.
func (b *StyleBuilder) Align(alignment string) *StyleBuilder {
	b.style.Alignment = alignment
	return b
}

// Border sets the border style and color.
func (b *StyleBuilder) Border(style, color string) *StyleBuilder {
	b.style.BorderStyle = style
	b.style.BorderColor = color
	return b
}

// NumberFormat sets the number format.
func (b *StyleBuilder) NumberFormat(format string) *StyleBuilder {
	b.style.NumberFormat = format
	return b
}

// Build returns the built style.
func (b *StyleBuilder) Build() *CellStyle {
	return b.style
}

// DefaultHeaderStyle is the bold white-on-blue header used unless a template
// overrides it.
func DefaultHeaderStyle() *CellStyle {
	return NewStyleBuilder().
		Font("Arial", 11).
		Bold().
		FontColor("#FFFFFF").
		Fill("#4472C4").
		Align("center").
		Build()
}

// DefaultDataStyle returns the plain body cell style.
func DefaultDataStyle() *CellStyle {
	return NewStyleBuilder().
		Font("Arial", 10).
		Build()
}

// buildStyle registers a CellStyle with the file and returns its style id.
func buildStyle(f *excelize.File, style *CellStyle) (int, error) {
	if style == nil {
		return 0, nil
	}

	excelStyle := &excelize.Style{
		Font: &excelize.Font{
			Bold:   style.FontBold,
			Italic: style.FontItalic,
			Size:   style.FontSize,
			Family: style.FontName,
		},
		Alignment: &excelize.Alignment{
			Horizontal: style.Alignment,
			Vertical:   style.VerticalAlign,
			WrapText:   style.WrapText,
		},
	}

	if style.FontColor != "" {
		excelStyle.Font.Color = strings.TrimPrefix(style.FontColor, "#")
	}

	if style.FillColor != "" {
		excelStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(style.FillColor, "#")},
		}
	}

	if style.BorderStyle != "" {
		borderColor := "000000"
		if style.BorderColor != "" {
			borderColor = strings.TrimPrefix(style.BorderColor, "#")
		}
		excelStyle.Border = []excelize.Border{
			{Type: "left", Color: borderColor, Style: 1},
			{Type: "top", Color: borderColor, Style: 1},
			{Type: "bottom", Color: borderColor, Style: 1},
			{Type: "right", Color: borderColor, Style: 1},
		}
	}

	if style.NumberFormat != "" {
		excelStyle.CustomNumFmt = &style.NumberFormat
	}

	return f.NewStyle(excelStyle)
}
