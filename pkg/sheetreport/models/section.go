package models

// Record maps a column label to its cell value.
type Record map[string]Value

// Section is one table sliced out of a larger grid.
type Section struct {
	// Name is the section title found above the header row.
	Name string `json:"name" yaml:"name"`
	// HeaderRow is the 0-based row index of the header.
	HeaderRow int `json:"header_row" yaml:"header_row"`
	// Range is the A1 range from column A of the header row to the last header
	// column and the last non-blank row of the section (e.g. "A6:C9").
	Range string `json:"range,omitempty" yaml:"range,omitempty"`
	// Columns holds the unique column labels in sheet order.
	Columns []string `json:"columns" yaml:"columns"`
	// Rows holds the retained data rows.
	Rows []Record `json:"rows" yaml:"rows"`
	// SourceRows holds the 0-based grid row of each retained record.
	SourceRows []int `json:"source_rows,omitempty" yaml:"source_rows,omitempty"`
}

// Column returns every value of the named column in row order.
func (s *Section) Column(label string) []Value {
	out := make([]Value, 0, len(s.Rows))
	for _, rec := range s.Rows {
		out = append(out, rec[label])
	}
	return out
}

// HasColumn reports whether label is one of the section's columns.
func (s *Section) HasColumn(label string) bool {
	for _, c := range s.Columns {
		if c == label {
			return true
		}
	}
	return false
}

// ListItem is one label/value pair below an anchored caption.
type ListItem struct {
	Label string `json:"label" yaml:"label"`
	Value Value  `json:"value" yaml:"value"`
}

// List is a run of label/value pairs found below a keyword anchor.
type List struct {
	Name   string     `json:"name" yaml:"name"`
	Anchor Anchor     `json:"anchor" yaml:"anchor"`
	Items  []ListItem `json:"items" yaml:"items"`
}

// SectionSummary aggregates the PnL and MTM columns of a section.
type SectionSummary struct {
	Name     string  `json:"name" yaml:"name"`
	DailyPnL float64 `json:"daily_pnl" yaml:"daily_pnl"`
	TotalMTM float64 `json:"total_mtm" yaml:"total_mtm"`
	// PnLColumn and MTMColumn name the columns that were summed, if any.
	PnLColumn string `json:"pnl_column,omitempty" yaml:"pnl_column,omitempty"`
	MTMColumn string `json:"mtm_column,omitempty" yaml:"mtm_column,omitempty"`
}

// Summary aggregates all sections.
type Summary struct {
	Sections      []SectionSummary `json:"sections" yaml:"sections"`
	TotalDailyPnL float64          `json:"total_daily_pnl" yaml:"total_daily_pnl"`
	TotalMTM      float64          `json:"total_mtm" yaml:"total_mtm"`
}

// Issue records a numeric cell that could not be parsed in strict mode.
type Issue struct {
	// Where names the indicator, section or list that owns the cell.
	Where string `json:"where" yaml:"where"`
	Row   int    `json:"row" yaml:"row"`
	Col   int    `json:"col" yaml:"col"`
	Raw   string `json:"raw" yaml:"raw"`
}
