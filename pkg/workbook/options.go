package workbook

// WithHeaderStyle sets a custom style for the header row.
func WithHeaderStyle(style *CellStyle) Option {
	return func(cfg *Config) {
		cfg.HeaderStyle = style
	}
}

// WithDataStyle sets a custom style for body cells.
func WithDataStyle(style *CellStyle) Option {
	return func(cfg *Config) {
		cfg.DataStyle = style
	}
}

// WithoutHeaderRow disables header styling, freezing and filtering; every
// row is treated as data.
func WithoutHeaderRow() Option {
	return func(cfg *Config) {
		cfg.HeaderRow = false
	}
}

// WithFreezeHeader keeps the header row visible while scrolling.
func WithFreezeHeader() Option {
	return func(cfg *Config) {
		cfg.FreezeHeader = true
	}
}

// WithAutoFilter enables the filter dropdowns on the header row.
func WithAutoFilter() Option {
	return func(cfg *Config) {
		cfg.AutoFilter = true
	}
}

// WithDocProps sets the workbook's document properties.
func WithDocProps(title, creator string) Option {
	return func(cfg *Config) {
		cfg.DocTitle = title
		cfg.DocCreator = creator
	}
}

// WithTemplate applies a loaded layout template on top of the defaults.
func WithTemplate(t *LayoutTemplate) Option {
	return func(cfg *Config) {
		if t == nil {
			return
		}
		if t.DocTitle != "" {
			cfg.DocTitle = t.DocTitle
		}
		if t.DocCreator != "" {
			cfg.DocCreator = t.DocCreator
		}
		cfg.FreezeHeader = t.FreezeHeader
		cfg.AutoFilter = t.AutoFilter
		if t.HeaderStyle != nil {
			cfg.HeaderStyle = t.HeaderStyle.toCellStyle(DefaultHeaderStyle())
		}
		if t.DataStyle != nil {
			cfg.DataStyle = t.DataStyle.toCellStyle(DefaultDataStyle())
		}
	}
}
