package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

// HeaderRows returns, top to bottom, the rows whose leading cells contain
// both the type marker and the key marker.
func HeaderRows(g *models.Grid, vocab Vocabulary) []int {
	var rows []int
	for r := 0; r < g.Rows(); r++ {
		if isHeaderRow(g, r, vocab) {
			rows = append(rows, r)
		}
	}
	return rows
}

func isHeaderRow(g *models.Grid, r int, vocab Vocabulary) bool {
	if vocab.TypeMarker == "" || vocab.KeyMarker == "" {
		return false
	}
	parts := make([]string, 0, vocab.HeaderScanWidth)
	for c := 0; c < vocab.HeaderScanWidth && c < g.Cols(); c++ {
		v := g.At(r, c)
		if v.IsEmpty() {
			continue
		}
		parts = append(parts, v.String())
	}
	joined := strings.Join(parts, " ")
	return strings.Contains(joined, vocab.TypeMarker) && strings.Contains(joined, vocab.KeyMarker)
}

// Segment splits g into sections, one per header row. Sections sharing a name
// collapse to the last one, kept at the position of the first. In strict mode
// unparsable value cells are kept as unparsed markers and reported as issues.
func Segment(g *models.Grid, vocab Vocabulary, strict bool) ([]models.Section, []models.Issue) {
	headers := HeaderRows(g, vocab)
	if len(headers) == 0 {
		return []models.Section{}, nil
	}

	var (
		collected models.Report
		issues    []models.Issue
	)
	for i, start := range headers {
		end := g.Rows()
		if i < len(headers)-1 {
			end = headers[i+1] - vocab.EndMargin
		}
		if end < start+1 {
			end = start + 1
		}

		section, ok := buildSection(g, vocab, start, end, sectionName(g, vocab, start, i))
		if !ok {
			continue
		}
		issues = append(issues, coerceColumns(&section, vocab, strict)...)
		collected.PutSection(section)
	}

	if collected.Sections == nil {
		return []models.Section{}, issues
	}
	return collected.Sections, issues
}

// sectionName looks a few rows above the header, left columns first, for a title.
func sectionName(g *models.Grid, vocab Vocabulary, headerRow, index int) string {
	for offset := 1; offset <= vocab.NameLookback; offset++ {
		r := headerRow - offset
		if r < 0 {
			break
		}
		for c := 0; c < vocab.NameColumns; c++ {
			candidate := strings.TrimSpace(g.At(r, c).String())
			if candidate != "" && !vocab.IsPlaceholder(candidate) {
				return candidate
			}
		}
	}
	return fmt.Sprintf("Section %d", index+1)
}

// buildSection reads labels from the header row and keeps rows in (header, end)
// whose key column is filled. ok is false when no column carries the key marker.
func buildSection(g *models.Grid, vocab Vocabulary, headerRow, end int, name string) (models.Section, bool) {
	lastCol := lastNonEmptyColumn(g, headerRow)
	raw := make([]string, lastCol+1)
	for c := 0; c <= lastCol; c++ {
		label := strings.TrimSpace(g.At(headerRow, c).String())
		if label == "" {
			label = columnName(c)
		}
		raw[c] = label
	}
	labels := DedupLabels(raw)

	keyCol := -1
	for c, label := range labels {
		if strings.Contains(label, vocab.KeyMarker) {
			keyCol = c
			break
		}
	}
	if keyCol < 0 {
		return models.Section{}, false
	}

	section := models.Section{
		Name:      name,
		HeaderRow: headerRow,
		Columns:   labels,
		Rows:      []models.Record{},
	}
	for r := headerRow + 1; r < end; r++ {
		if g.At(r, keyCol).IsBlank() {
			continue
		}
		rec := make(models.Record, len(labels))
		for c, label := range labels {
			rec[label] = g.At(r, c)
		}
		section.Rows = append(section.Rows, rec)
		section.SourceRows = append(section.SourceRows, r)
	}

	// The header row is never blank, so the bounds always include it.
	_, maxRow, _, _ := findDataBounds(g, headerRow, end)
	section.Range = cellRange(headerRow, 0, maxRow, lastCol)
	return section, true
}

// coerceColumns replaces the cells of every value column with numbers.
func coerceColumns(s *models.Section, vocab Vocabulary, strict bool) []models.Issue {
	var issues []models.Issue
	for c, label := range s.Columns {
		if !vocab.IsValueColumn(label) {
			continue
		}
		for i, rec := range s.Rows {
			v, ok := Coerce(rec[label], strict)
			if !ok && strict {
				issues = append(issues, models.Issue{
					Where: s.Name,
					Row:   s.SourceRows[i],
					Col:   c,
					Raw:   rec[label].Text,
				})
			}
			rec[label] = v
		}
	}
	return issues
}

// DedupLabels makes labels unique by suffixing repeats with _1, _2, ...
// First occurrences are left unchanged.
func DedupLabels(raw []string) []string {
	out := make([]string, 0, len(raw))
	counts := make(map[string]int, len(raw))
	used := make(map[string]bool, len(raw))

	for _, label := range raw {
		label = strings.TrimSpace(label)
		n, seen := counts[label]
		if !seen && !used[label] {
			counts[label] = 0
			used[label] = true
			out = append(out, label)
			continue
		}

		candidate := label
		for used[candidate] {
			n++
			candidate = fmt.Sprintf("%s_%d", label, n)
		}
		counts[label] = n
		used[candidate] = true
		out = append(out, candidate)
	}
	return out
}
