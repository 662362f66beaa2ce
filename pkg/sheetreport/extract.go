package sheetreport

import (
	"log/slog"
	"path/filepath"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/parser"
)

// Extract loads the workbook at path and extracts its report.
func Extract(path string, opts Options) (*models.Report, error) {
	src, err := Load(path, opts)
	if err != nil {
		return nil, err
	}

	report, err := ExtractGrid(src.Grid, opts)
	if err != nil {
		return nil, err
	}
	report.Source = filepath.Base(src.Path)
	report.Sheet = src.Sheet
	return report, nil
}

// ExtractGrid extracts indicators, sections, anchored lists and tables from g.
// It does no I/O and the same grid and options always give the same report.
// The only error is ErrNoGrid for a nil grid.
func ExtractGrid(g *models.Grid, opts Options) (*models.Report, error) {
	if g == nil {
		return nil, ErrNoGrid
	}
	opts = opts.withDefaults()
	log := opts.logger()

	var issues []models.Issue

	// Global indicators near the top of the sheet
	indicators, found := parser.ExtractIndicators(g, opts.Indicators, opts.TopWindow, opts.Strict)
	issues = append(issues, found...)

	// Sections over the whole grid
	sections, found := parser.Segment(g, opts.Vocabulary, opts.Strict)
	issues = append(issues, found...)

	// Keyword-anchored blocks
	lists, found := parser.ExtractLists(g, opts.Lists, opts.Strict)
	issues = append(issues, found...)
	tables := parser.ExtractTables(g, opts.Tables)

	report := &models.Report{
		Indicators: indicators,
		Sections:   sections,
		Lists:      lists,
		Tables:     tables,
		Summary:    parser.Summarize(sections, opts.Vocabulary),
		Issues:     issues,
	}

	log.Debug("extracted report",
		slog.Int("indicators", len(indicators)),
		slog.Int("sections", len(sections)),
		slog.Int("lists", len(lists)),
		slog.Int("tables", len(tables)),
		slog.Int("issues", len(issues)))
	if len(issues) > 0 {
		log.Warn("unparsed numeric cells", slog.Int("count", len(issues)))
	}

	return report, nil
}
