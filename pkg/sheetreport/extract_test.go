package sheetreport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/parser"
	"github.com/xuri/excelize/v2"
)

// scenarioRows is the as-of date block plus one three-row section.
func scenarioRows() [][]string {
	return [][]string{
		{"기준일", "2025-12-22 KST", ""},
		{"", "", ""},
		{"", "", ""},
		{"", "", ""},
		{"", "", ""},
		{"Type", "STR No.", "Sum"},
		{"IRS", "STR-001", "1,234"},
		{"IRS", "", "999"},
		{"CRS", "STR-002", "(100)"},
	}
}

// writeWorkbook saves rows to a new workbook at path on the given sheet.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func assertScenario(t *testing.T, report *models.Report) {
	t.Helper()
	assert.Equal(t, map[string]models.Value{
		"as-of date": models.TextValue("2025-12-22"),
	}, report.Indicators)

	require.Len(t, report.Sections, 1)
	section := report.Sections[0]
	assert.Equal(t, "Section 1", section.Name)
	assert.Equal(t, []string{"Type", "STR No.", "Sum"}, section.Columns)
	require.Len(t, section.Rows, 2)
	for _, rec := range section.Rows {
		assert.True(t, rec["Sum"].IsNumber(), "Sum is coerced to a number")
	}
	assert.Equal(t, models.NumberValue(1234), section.Rows[0]["Sum"])
	assert.Equal(t, models.NumberValue(-100), section.Rows[1]["Sum"])

	assert.Empty(t, report.Lists)
	assert.Empty(t, report.Tables)
	assert.Empty(t, report.Issues)
	assert.Equal(t, 1134.0, report.Summary.TotalMTM)
}

func TestExtractGridScenario(t *testing.T) {
	report, err := ExtractGrid(parser.GridFromRows(scenarioRows()), DefaultOptions())
	require.NoError(t, err)
	assertScenario(t, report)
	assert.Empty(t, report.Source)
}

func TestExtractGridNil(t *testing.T) {
	report, err := ExtractGrid(nil, DefaultOptions())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNoGrid)
}

func TestExtractGridEmpty(t *testing.T) {
	report, err := ExtractGrid(models.NewGrid(nil), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, report.Indicators)
	assert.NotNil(t, report.Sections)
	assert.Empty(t, report.Sections)
	assert.Empty(t, report.Summary.Sections)
}

func TestExtractGridIsReferentiallyTransparent(t *testing.T) {
	g := parser.GridFromRows(scenarioRows())
	a, err := ExtractGrid(g, DefaultOptions())
	require.NoError(t, err)
	b, err := ExtractGrid(g, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// The grid itself is untouched by coercion.
	assert.Equal(t, models.TextValue("1,234"), g.At(6, 2))
}

func TestExtractGridStrict(t *testing.T) {
	rows := scenarioRows()
	rows[6][2] = "12x"
	opts := DefaultOptions()
	opts.Strict = true

	report, err := ExtractGrid(parser.GridFromRows(rows), opts)
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, models.Issue{Where: "Section 1", Row: 6, Col: 2, Raw: "12x"}, report.Issues[0])
	assert.Equal(t, models.UnparsedValue("12x"), report.Sections[0].Rows[0]["Sum"])
}

func TestExtractFromWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "G.BTB_20251222.xlsx")
	writeWorkbook(t, path, "BTB", scenarioRows())

	report, err := Extract(path, DefaultOptions())
	require.NoError(t, err)
	assertScenario(t, report)
	assert.Equal(t, "G.BTB_20251222.xlsx", report.Source)
	assert.Equal(t, "BTB", report.Sheet)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtractInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Extract(path, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "open", extractionErr.Component)
}

func TestExtractSheetSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeWorkbook(t, path, "Report", scenarioRows())

	opts := DefaultOptions()
	opts.Sheet = "Report"
	report, err := Extract(path, opts)
	require.NoError(t, err)
	assert.Equal(t, "Report", report.Sheet)

	opts.Sheet = "Other"
	_, err = Extract(path, opts)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestExtractKeepsCellTypes(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	require.NoError(t, f.SetCellStr(sheet, "A1", "기준일"))
	require.NoError(t, f.SetCellValue(sheet, "B1", time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetSheetRow(sheet, "A6", &[]interface{}{"Type", "STR No.", "Qty"}))
	require.NoError(t, f.SetCellStr(sheet, "A7", "IRS"))
	require.NoError(t, f.SetCellStr(sheet, "B7", "00123"))
	require.NoError(t, f.SetCellValue(sheet, "C7", 1234567))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C7", "C7", style))

	path := filepath.Join(t.TempDir(), "typed.xlsx")
	require.NoError(t, f.SaveAs(path))

	report, err := Extract(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.TextValue("2025-12-22"), report.Indicators["as-of date"])
	require.Len(t, report.Sections, 1)
	require.Len(t, report.Sections[0].Rows, 1)
	row := report.Sections[0].Rows[0]
	assert.Equal(t, models.TextValue("00123"), row["STR No."])
	assert.Equal(t, models.NumberValue(1234567), row["Qty"])
}

func TestExtractGridZeroOptions(t *testing.T) {
	g := parser.GridFromRows([][]string{
		{"Type", "STR", "Sum"},
		{"a", "1", "2"},
	})

	report, err := ExtractGrid(g, Options{})
	require.NoError(t, err)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Section 1", report.Sections[0].Name)
	require.Len(t, report.Sections[0].Rows, 1)
	assert.Equal(t, models.NumberValue(2), report.Sections[0].Rows[0]["Sum"])
}
