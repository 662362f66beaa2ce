package parser

import "strings"

// Vocabulary holds the marker tokens that drive header detection, section
// naming, row filtering and numeric column classification.
type Vocabulary struct {
	// TypeMarker and KeyMarker must both appear in a header row.
	TypeMarker string `mapstructure:"type_marker" yaml:"type_marker" validate:"required"`
	// KeyMarker also identifies the row-identifier column.
	KeyMarker string `mapstructure:"key_marker" yaml:"key_marker" validate:"required"`
	// HeaderScanWidth is how many leading columns are searched for markers.
	HeaderScanWidth int `mapstructure:"header_scan_width" yaml:"header_scan_width" validate:"gte=1"`
	// NameLookback is how many rows above a header are searched for its title.
	NameLookback int `mapstructure:"name_lookback" yaml:"name_lookback" validate:"gte=0"`
	// NameColumns is how many leading columns are searched for the title.
	NameColumns int `mapstructure:"name_columns" yaml:"name_columns" validate:"gte=1"`
	// Placeholders are texts that are never used as a section title. "nan"
	// covers blank cells that some exporters write out literally.
	Placeholders []string `mapstructure:"placeholders" yaml:"placeholders"`
	// EndMargin is the number of rows kept free above the next header.
	EndMargin int `mapstructure:"end_margin" yaml:"end_margin" validate:"gte=0"`
	// ValueMarkers select the columns coerced to numbers.
	ValueMarkers []string `mapstructure:"value_markers" yaml:"value_markers" validate:"dive,required"`
	// PnLMarkers select the daily PnL column summarised per section (last match wins).
	PnLMarkers []string `mapstructure:"pnl_markers" yaml:"pnl_markers" validate:"dive,required"`
	// MTMMarkers select the MTM column summarised per section (first match wins).
	MTMMarkers []string `mapstructure:"mtm_markers" yaml:"mtm_markers" validate:"dive,required"`
}

// DefaultVocabulary returns the vocabulary of the structured-swap BTB report.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		TypeMarker:      "Type",
		KeyMarker:       "STR",
		HeaderScanWidth: 6,
		NameLookback:    3,
		NameColumns:     2,
		Placeholders:    []string{"ROLL", "nan"},
		EndMargin:       3,
		ValueMarkers:    []string{"MTM", "P/L", "CF", "Sum", "Carry", "NT", "Valuation"},
		PnLMarkers:      []string{"Daily P/L", "Daily Carry", "P/L Chg"},
		MTMMarkers:      []string{"Sum", "Valuation"},
	}
}

// IsValueColumn reports whether label contains a value marker.
func (v Vocabulary) IsValueColumn(label string) bool {
	return containsAny(label, v.ValueMarkers)
}

// IsPlaceholder reports whether text is a placeholder title.
func (v Vocabulary) IsPlaceholder(text string) bool {
	for _, p := range v.Placeholders {
		if text == p {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}
