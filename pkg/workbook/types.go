package workbook

// Table is one sheet's worth of data: a name, a matrix whose first row is
// the header, and optional per-column width hints. Headerless marks tables
// whose first row is ordinary data, such as summary blocks; these skip
// header styling, freezing and filtering regardless of the writer config.
type Table struct {
	Name         string
	Rows         [][]interface{}
	ColumnWidths []float64
	Headerless   bool
}

// Config controls workbook-wide appearance and behavior.
type Config struct {
	// HeaderRow styles and decorates the first row of each table.
	HeaderRow    bool
	FreezeHeader bool
	AutoFilter   bool

	HeaderStyle *CellStyle
	DataStyle   *CellStyle

	DocTitle   string
	DocCreator string
}

// Option mutates the writer configuration.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		HeaderRow:   true,
		HeaderStyle: DefaultHeaderStyle(),
		DataStyle:   DefaultDataStyle(),
	}
}
