package parser

import (
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

// Find returns the position of the first cell, in row-major order, whose
// trimmed text contains keyword. ok is false when no cell matches.
func Find(g *models.Grid, keyword string) (models.Anchor, bool) {
	return FindWithin(g, keyword, 0)
}

// FindWithin is Find restricted to the first maxRows rows. A maxRows of zero
// or less scans the whole grid.
func FindWithin(g *models.Grid, keyword string, maxRows int) (models.Anchor, bool) {
	return FindFunc(g, maxRows, func(text string) bool {
		return strings.Contains(text, keyword)
	})
}

// FindFunc returns the first cell whose trimmed text satisfies match.
func FindFunc(g *models.Grid, maxRows int, match func(text string) bool) (models.Anchor, bool) {
	rows := g.Rows()
	if maxRows > 0 && maxRows < rows {
		rows = maxRows
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < g.Cols(); c++ {
			v := g.At(r, c)
			if v.IsEmpty() {
				continue
			}
			if match(strings.TrimSpace(v.String())) {
				return models.Anchor{Row: r, Col: c}, true
			}
		}
	}
	return models.Anchor{}, false
}
