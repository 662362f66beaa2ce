package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

func headerBlock() *models.Grid {
	return sheet(
		[]string{"기준일", "2025-12-22 KST", "", "daily PnL", "(1,250)"},
		[]string{"원화 잔고(억)", "1,200", "", "외화 잔고(억)", ""},
		[]string{"", "", "", "", "300"},
		[]string{"", "1,500", "", "", ""},
	)
}

func TestExtractIndicatorsDefaults(t *testing.T) {
	got, issues := ExtractIndicators(headerBlock(), DefaultIndicatorRules(), DefaultTopWindow, false)
	assert.Empty(t, issues)

	assert.Equal(t, map[string]models.Value{
		"as-of date":               models.TextValue("2025-12-22"),
		"local-currency balance":   models.NumberValue(1200),
		"foreign-currency balance": models.NumberValue(300),
		"total balance":            models.NumberValue(1500),
		"daily PnL":                models.NumberValue(-1250),
	}, got)
}

func TestExtractIndicatorsMissingLabelsAreOmitted(t *testing.T) {
	got, _ := ExtractIndicators(sheet([]string{"nothing"}), DefaultIndicatorRules(), DefaultTopWindow, false)
	assert.Empty(t, got)
}

func TestExtractIndicatorsTopWindow(t *testing.T) {
	rows := make([][]string, 40)
	for i := range rows {
		rows[i] = blank(2)
	}
	rows[35] = []string{"기준일", "2025-01-02"}
	g := GridFromRows(rows)

	got, _ := ExtractIndicators(g, DefaultIndicatorRules(), DefaultTopWindow, false)
	assert.NotContains(t, got, "as-of date")

	got, _ = ExtractIndicators(g, DefaultIndicatorRules(), 0, false)
	assert.Equal(t, models.TextValue("2025-01-02"), got["as-of date"])
}

func TestExtractIndicatorsLaterRuleWins(t *testing.T) {
	g := sheet(
		[]string{"After", "2025-12-19 00:00:00"},
		[]string{"기준일", "2025-12-22"},
	)
	got, _ := ExtractIndicators(g, DefaultIndicatorRules(), DefaultTopWindow, false)
	assert.Equal(t, models.TextValue("2025-12-22"), got["as-of date"])

	g = sheet([]string{"After", "2025-12-19 00:00:00"})
	got, _ = ExtractIndicators(g, DefaultIndicatorRules(), DefaultTopWindow, false)
	assert.Equal(t, models.TextValue("2025-12-19"), got["as-of date"])
}

func TestExtractIndicatorsDateSerial(t *testing.T) {
	// 46013 is 2025-12-22 in the 1900 date system.
	g := sheet([]string{"기준일", "46013"})
	got, _ := ExtractIndicators(g, DefaultIndicatorRules(), DefaultTopWindow, false)
	assert.Equal(t, models.TextValue("2025-12-22"), got["as-of date"])
}

func TestExtractIndicatorsEmptyTargets(t *testing.T) {
	g := sheet([]string{"기준일", "", "원화 잔고", ""})
	got, _ := ExtractIndicators(g, DefaultIndicatorRules(), DefaultTopWindow, false)
	assert.NotContains(t, got, "as-of date", "empty text targets are omitted")
	assert.Equal(t, models.NumberValue(0), got["local-currency balance"], "empty numeric targets normalize to zero")
}

func TestExtractIndicatorsStrict(t *testing.T) {
	g := sheet([]string{"daily PnL", "n/a"})
	got, issues := ExtractIndicators(g, DefaultIndicatorRules(), DefaultTopWindow, true)
	assert.Equal(t, models.UnparsedValue("n/a"), got["daily PnL"])
	require.Len(t, issues, 1)
	assert.Equal(t, models.Issue{Where: "daily PnL", Row: 0, Col: 1, Raw: "n/a"}, issues[0])
}

func TestExtractIndicatorsTextKind(t *testing.T) {
	rules := []IndicatorRule{{Name: "desk", Label: "Desk", RowOffset: 1, ColOffset: 0, Kind: IndicatorText}}
	g := sheet([]string{"Desk"}, []string{"  FICC Structuring  "})
	got, _ := ExtractIndicators(g, rules, 0, false)
	assert.Equal(t, models.TextValue("FICC Structuring"), got["desk"])
}
