package parser

import (
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

// Summarize totals each section's daily PnL column (the last column matching a
// PnL marker) and MTM column (the first column matching an MTM marker).
func Summarize(sections []models.Section, vocab Vocabulary) models.Summary {
	summary := models.Summary{Sections: make([]models.SectionSummary, 0, len(sections))}

	for i := range sections {
		s := &sections[i]
		item := models.SectionSummary{Name: s.Name}

		for _, label := range s.Columns {
			if containsAny(label, vocab.PnLMarkers) {
				item.PnLColumn = label
			}
		}
		for _, label := range s.Columns {
			if containsAny(label, vocab.MTMMarkers) {
				item.MTMColumn = label
				break
			}
		}

		if item.PnLColumn != "" {
			item.DailyPnL = sumColumn(s, item.PnLColumn)
		}
		if item.MTMColumn != "" {
			item.TotalMTM = sumColumn(s, item.MTMColumn)
		}

		summary.TotalDailyPnL += item.DailyPnL
		summary.TotalMTM += item.TotalMTM
		summary.Sections = append(summary.Sections, item)
	}
	return summary
}

func sumColumn(s *models.Section, label string) float64 {
	total := 0.0
	for _, v := range s.Column(label) {
		total += Normalize(v)
	}
	return total
}

// CleanSectionName strips currency symbols and surrounding space from a
// section name for display as a tab or chart label.
func CleanSectionName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "$", ""))
}
