package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func salesTable() Table {
	return Table{
		Name: "Monthly Sales",
		Rows: [][]interface{}{
			{"Region", "Qty"},
			{"East", 15.0},
			{"West", 3.0},
		},
		ColumnWidths: []float64{12, 10},
	}
}

func TestWriterSingleTable(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))
	assert.Equal(t, 1, w.SheetCount())

	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Monthly Sales"}, f.GetSheetList())

	a1, err := f.GetCellValue("Monthly Sales", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Region", a1)

	b2, err := f.GetCellValue("Monthly Sales", "B2")
	require.NoError(t, err)
	assert.Equal(t, "15", b2)

	a3, err := f.GetCellValue("Monthly Sales", "A3")
	require.NoError(t, err)
	assert.Equal(t, "West", a3)
}

func TestWriterMultipleTables(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))
	require.NoError(t, w.AddTable(Table{
		Name: "Headcount",
		Rows: [][]interface{}{{"Dept", "Count"}, {"Sales", 12}},
	}))
	assert.Equal(t, 2, w.SheetCount())

	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	// The default sheet was renamed by the first table, so only the two
	// table names remain.
	assert.Equal(t, []string{"Monthly Sales", "Headcount"}, f.GetSheetList())
}

func TestWriterRejectsUnnamedTable(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	err := w.AddTable(Table{Rows: [][]interface{}{{"A"}}})
	assert.Error(t, err)
}

func TestWriterRejectsDuplicateSheetName(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))
	err := w.AddTable(salesTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate sheet name")
	assert.Equal(t, 1, w.SheetCount())
}

func TestWriterEmptyWorkbookFails(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	_, err := w.WriteToBuffer()
	assert.Error(t, err)
}

func TestWriterColumnWidths(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))

	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth("Monthly Sales", "A")
	require.NoError(t, err)
	assert.InDelta(t, 12.0, width, 0.01)
}

func TestWriterHeaderStyle(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))

	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle("Monthly Sales", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)

	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, "center", style.Alignment.Horizontal)
}

func TestWriterDocProps(t *testing.T) {
	w := NewWriter(WithDocProps("Dashboard Export", "exportgateway"))
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))

	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Dashboard Export", props.Title)
	assert.Equal(t, "exportgateway", props.Creator)
}

func TestWriterFreezeAndFilterOptions(t *testing.T) {
	w := NewWriter(WithFreezeHeader(), WithAutoFilter())
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))

	// The workbook must still serialize cleanly with panes and filters set.
	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Monthly Sales"}, f.GetSheetList())
}

func TestWriterWithoutHeaderRow(t *testing.T) {
	w := NewWriter(WithoutHeaderRow(), WithFreezeHeader())
	defer w.Close()

	require.NoError(t, w.AddTable(Table{
		Name: "Raw",
		Rows: [][]interface{}{{"just", "data"}},
	}))

	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle("Raw", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	if style.Font != nil {
		assert.False(t, style.Font.Bold)
	}
}

func TestWriterHeaderlessTable(t *testing.T) {
	w := NewWriter(WithAutoFilter())
	defer w.Close()

	require.NoError(t, w.AddTable(salesTable()))
	require.NoError(t, w.AddTable(Table{
		Name: "Filter Summary",
		Rows: [][]interface{}{
			{"Filter Summary"},
			{"Dashboard", "Sales"},
		},
		Headerless: true,
	}))

	buf, err := w.WriteToBuffer()
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	// The summary's first row is plain data, not a styled header row.
	styleID, err := f.GetCellStyle("Filter Summary", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	if style.Font != nil {
		assert.False(t, style.Font.Bold)
	}

	// The data sheet keeps its styled header.
	headerID, err := f.GetCellStyle("Monthly Sales", "A1")
	require.NoError(t, err)
	headerStyle, err := f.GetStyle(headerID)
	require.NoError(t, err)
	require.NotNil(t, headerStyle.Font)
	assert.True(t, headerStyle.Font.Bold)
}
