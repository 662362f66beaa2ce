package parser

import (
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

// ListRule reads label/value pairs below a caption.
type ListRule struct {
	Name  string `mapstructure:"name" yaml:"name" validate:"required"`
	Label string `mapstructure:"label" yaml:"label" validate:"required"`
	// StartOffset is the first row below the caption that holds an item.
	StartOffset int `mapstructure:"start_offset" yaml:"start_offset" validate:"gte=0"`
	// MaxRows bounds the number of rows scanned.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows" validate:"gte=1"`
	// ValueOffset is the distance from the label column to the value column.
	ValueOffset int `mapstructure:"value_offset" yaml:"value_offset"`
	// StopOnBlank ends the list at the first blank label instead of skipping it.
	StopOnBlank bool `mapstructure:"stop_on_blank" yaml:"stop_on_blank"`
	// SkipZero drops items whose value is zero.
	SkipZero bool `mapstructure:"skip_zero" yaml:"skip_zero"`
}

// TableRule reads a fixed-size table whose header row holds the caption.
type TableRule struct {
	Name  string `mapstructure:"name" yaml:"name" validate:"required"`
	Label string `mapstructure:"label" yaml:"label" validate:"required"`
	// Rows is the number of data rows under the header.
	Rows int `mapstructure:"rows" yaml:"rows" validate:"gte=1"`
	// Width is the number of columns starting at the caption.
	Width int `mapstructure:"width" yaml:"width" validate:"gte=1"`
}

// DefaultListRules returns the PnL attribution and early-termination lists.
func DefaultListRules() []ListRule {
	return []ListRule{
		{Name: "carry-unrecognized set PnL", Label: "캐리미인식 set PnL", StartOffset: 1, MaxRows: 14, ValueOffset: 1, SkipZero: true},
		{Name: "carry-recognized set PnL", Label: "캐리인식 set PnL", StartOffset: 1, MaxRows: 14, ValueOffset: 1, SkipZero: true},
		{Name: "early-termination PnL distribution", Label: "조기 종료시 PnL", StartOffset: 2, MaxRows: 8, ValueOffset: 3, StopOnBlank: true},
	}
}

// DefaultTableRules returns the top-3 risk tables.
func DefaultTableRules() []TableRule {
	return []TableRule{
		{Name: "top3 high-risk (early termination)", Label: "top3 고위험 종목", Rows: 3, Width: 8},
		{Name: "top3 high-probability (asset swap)", Label: "top3 고확률 종목", Rows: 3, Width: 8},
	}
}

// ExtractLists evaluates list rules in order. Rules whose caption is missing
// produce no list.
func ExtractLists(g *models.Grid, rules []ListRule, strict bool) ([]models.List, []models.Issue) {
	lists := []models.List{}
	var issues []models.Issue

	for _, rule := range rules {
		at, ok := Find(g, rule.Label)
		if !ok {
			continue
		}

		list := models.List{Name: rule.Name, Anchor: at, Items: []models.ListItem{}}
		for i := rule.StartOffset; i < rule.StartOffset+rule.MaxRows; i++ {
			r := at.Row + i
			if r >= g.Rows() {
				break
			}
			label := strings.TrimSpace(g.At(r, at.Col).String())
			if label == "" {
				if rule.StopOnBlank {
					break
				}
				continue
			}

			raw := g.At(r, at.Col+rule.ValueOffset)
			v, parsed := Coerce(raw, strict)
			if !parsed && strict {
				issues = append(issues, models.Issue{Where: rule.Name, Row: r, Col: at.Col + rule.ValueOffset, Raw: raw.Text})
			}
			if rule.SkipZero && v.IsNumber() && v.Number == 0 {
				continue
			}
			list.Items = append(list.Items, models.ListItem{Label: label, Value: v})
		}
		lists = append(lists, list)
	}
	return lists, issues
}

// ExtractTables evaluates table rules in order. Values keep their loaded type.
func ExtractTables(g *models.Grid, rules []TableRule) []models.Section {
	tables := []models.Section{}

	for _, rule := range rules {
		at, ok := Find(g, rule.Label)
		if !ok {
			continue
		}

		raw := make([]string, rule.Width)
		for c := 0; c < rule.Width; c++ {
			label := strings.TrimSpace(g.At(at.Row, at.Col+c).String())
			if label == "" {
				label = columnName(at.Col + c)
			}
			raw[c] = label
		}
		labels := DedupLabels(raw)

		table := models.Section{
			Name:      rule.Name,
			HeaderRow: at.Row,
			Columns:   labels,
			Rows:      []models.Record{},
		}
		last := at.Row
		for r := at.Row + 1; r <= at.Row+rule.Rows && r < g.Rows(); r++ {
			rec := make(models.Record, len(labels))
			for c, label := range labels {
				rec[label] = g.At(r, at.Col+c)
			}
			table.Rows = append(table.Rows, rec)
			table.SourceRows = append(table.SourceRows, r)
			last = r
		}
		table.Range = cellRange(at.Row, at.Col, last, at.Col+rule.Width-1)
		tables = append(tables, table)
	}
	return tables
}
