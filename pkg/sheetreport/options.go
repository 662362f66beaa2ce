// Package sheetreport extracts indicators and sectioned tables from
// loosely structured report spreadsheets.
package sheetreport

import (
	"log/slog"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/parser"
)

// Options configures extraction behavior.
type Options struct {
	// Sheet is the sheet to read. Empty selects the first sheet.
	Sheet string
	// RawValues keeps date cells as Excel serial numbers instead of ISO dates.
	RawValues bool
	// FallbackToDirectory loads the first workbook in the same directory when
	// the requested file does not exist.
	FallbackToDirectory bool
	// Strict keeps unparsable value cells as unparsed markers and reports them
	// as issues instead of silently reading them as zero.
	Strict bool
	// TopWindow is the number of leading rows searched for indicators.
	// Zero or less searches the whole sheet.
	TopWindow int
	// Vocabulary drives section detection and column classification.
	// A vocabulary without markers is replaced by parser.DefaultVocabulary().
	Vocabulary parser.Vocabulary
	// Indicators, Lists and Tables are evaluated in order.
	Indicators []parser.IndicatorRule
	Lists      []parser.ListRule
	Tables     []parser.TableRule
	// Logger receives load and extraction events. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options for the BTB report layout.
func DefaultOptions() Options {
	return Options{
		TopWindow:  parser.DefaultTopWindow,
		Vocabulary: parser.DefaultVocabulary(),
		Indicators: parser.DefaultIndicatorRules(),
		Lists:      parser.DefaultListRules(),
		Tables:     parser.DefaultTableRules(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// withDefaults fills vocabulary fields that a zero Options leaves unusable.
func (o Options) withDefaults() Options {
	defaults := parser.DefaultVocabulary()
	v := &o.Vocabulary
	if v.TypeMarker == "" && v.KeyMarker == "" {
		o.Vocabulary = defaults
		return o
	}
	if v.TypeMarker == "" {
		v.TypeMarker = defaults.TypeMarker
	}
	if v.KeyMarker == "" {
		v.KeyMarker = defaults.KeyMarker
	}
	if v.HeaderScanWidth < 1 {
		v.HeaderScanWidth = defaults.HeaderScanWidth
	}
	if v.NameColumns < 1 {
		v.NameColumns = defaults.NameColumns
	}
	return o
}
