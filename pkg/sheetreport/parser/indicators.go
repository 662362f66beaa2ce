package parser

import (
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"github.com/xuri/excelize/v2"
)

// IndicatorKind selects how an indicator's target cell is read.
type IndicatorKind string

const (
	// IndicatorText keeps the trimmed cell text.
	IndicatorText IndicatorKind = "text"
	// IndicatorDate keeps the first word of the cell text, or formats an
	// Excel date serial as YYYY-MM-DD.
	IndicatorDate IndicatorKind = "date"
	// IndicatorNumber normalizes the cell to a number.
	IndicatorNumber IndicatorKind = "number"
)

// DefaultTopWindow is the number of leading rows searched for indicator labels.
const DefaultTopWindow = 30

// IndicatorRule locates a single value by the label next to it.
type IndicatorRule struct {
	// Name is the key stored in the indicator map.
	Name string `mapstructure:"name" yaml:"name" validate:"required"`
	// Label is the substring searched for.
	Label string `mapstructure:"label" yaml:"label" validate:"required"`
	// RowOffset and ColOffset locate the value relative to the label.
	RowOffset int `mapstructure:"row_offset" yaml:"row_offset"`
	ColOffset int `mapstructure:"col_offset" yaml:"col_offset"`
	// Kind is text, date or number.
	Kind IndicatorKind `mapstructure:"kind" yaml:"kind" validate:"oneof=text date number"`
}

// DefaultIndicatorRules returns the indicators of the BTB report header block.
// Both as-of rules share a name; the later one wins when both labels exist.
func DefaultIndicatorRules() []IndicatorRule {
	return []IndicatorRule{
		{Name: "as-of date", Label: "After", RowOffset: 0, ColOffset: 1, Kind: IndicatorDate},
		{Name: "as-of date", Label: "기준일", RowOffset: 0, ColOffset: 1, Kind: IndicatorDate},
		{Name: "local-currency balance", Label: "원화 잔고", RowOffset: 0, ColOffset: 1, Kind: IndicatorNumber},
		{Name: "foreign-currency balance", Label: "외화 잔고", RowOffset: 1, ColOffset: 1, Kind: IndicatorNumber},
		{Name: "total balance", Label: "원화 잔고", RowOffset: 2, ColOffset: 1, Kind: IndicatorNumber},
		{Name: "daily PnL", Label: "daily PnL", RowOffset: 0, ColOffset: 1, Kind: IndicatorNumber},
	}
}

// ExtractIndicators evaluates rules in order against the first topWindow rows.
// Rules whose label is not found are skipped.
func ExtractIndicators(g *models.Grid, rules []IndicatorRule, topWindow int, strict bool) (map[string]models.Value, []models.Issue) {
	out := make(map[string]models.Value, len(rules))
	var issues []models.Issue

	for _, rule := range rules {
		at, ok := FindWithin(g, rule.Label, topWindow)
		if !ok {
			continue
		}
		target := at.Offset(rule.RowOffset, rule.ColOffset)
		cell := g.At(target.Row, target.Col)

		switch rule.Kind {
		case IndicatorNumber:
			v, parsed := Coerce(cell, strict)
			if !parsed && strict {
				issues = append(issues, models.Issue{Where: rule.Name, Row: target.Row, Col: target.Col, Raw: cell.Text})
			}
			out[rule.Name] = v
		case IndicatorDate:
			if s := dateText(cell); s != "" {
				out[rule.Name] = models.TextValue(s)
			}
		default:
			if s := strings.TrimSpace(cell.String()); s != "" {
				out[rule.Name] = models.TextValue(s)
			}
		}
	}
	return out, issues
}

// dateText returns the first whitespace-separated token of a text cell, or
// the ISO date of an Excel serial number.
func dateText(v models.Value) string {
	if v.IsNumber() {
		t, err := excelize.ExcelDateToTime(v.Number, false)
		if err != nil {
			return v.String()
		}
		return t.Format("2006-01-02")
	}
	fields := strings.Fields(v.String())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
