package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// LoadGrid reads a whole sheet as an untyped grid with no header inference.
// Cell types come from the workbook: string cells stay text, numeric cells are
// numbers and date-formatted numbers become ISO dates. When raw is true date
// cells are kept as Excel serial numbers.
func LoadGrid(f *excelize.File, sheetName string, raw bool) (*models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	dateStyles := make(map[int]bool)

	values := make([][]models.Value, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Value, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cell)
			if err != nil {
				return nil, err
			}

			v := typedValue(cellValue, cellType)
			if v.IsNumber() && !raw && isDateCell(f, sheetName, cell, dateStyles) {
				if t, err := excelize.ExcelDateToTime(v.Number, date1904); err == nil {
					v = models.TextValue(formatDate(t))
				}
			}
			cells[colIdx] = v
		}
		values[rowIdx] = cells
	}
	return models.NewGrid(values), nil
}

// typedValue converts a raw cell value according to its stored type.
func typedValue(s string, cellType excelize.CellType) models.Value {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(s, 64); err == nil && isPlainNumber(s) {
			return models.NumberValue(f)
		}
	case excelize.CellTypeBool:
		if s == "1" {
			return models.TextValue("TRUE")
		}
		return models.TextValue("FALSE")
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return models.TextValue(formatDate(t))
		}
	}
	return models.TextValue(norm.NFC.String(s))
}

// isDateCell reports whether the cell's number format displays a date.
// Results are memoized per style index.
func isDateCell(f *excelize.File, sheetName, cell string, memo map[int]bool) bool {
	styleID, err := f.GetCellStyle(sheetName, cell)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := memo[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := f.GetStyle(styleID); err == nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = dateNumFmts[style.NumFmt]
		}
	}
	memo[styleID] = isDate
	return isDate
}

// dateNumFmts are the built-in number format IDs that display a calendar date.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true,
	34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormatCode reports whether a custom format code has year or day tokens
// outside quoted literals and bracketed sections.
func isDateFormatCode(code string) bool {
	var quoted, bracketed bool
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracketed = true
		case r == ']':
			bracketed = false
		case bracketed:
		case r == 'y', r == 'd':
			return true
		}
	}
	return false
}

// formatDate renders a date as YYYY-MM-DD, adding the time of day when set.
func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// GridFromRows types string rows that carry no cell types: "" is empty,
// integer and decimal strings are numbers, anything else is NFC-normalized text.
func GridFromRows(rows [][]string) *models.Grid {
	values := make([][]models.Value, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Value, len(row))
		for colIdx, cellValue := range row {
			cells[colIdx] = parseValue(cellValue)
		}
		values[rowIdx] = cells
	}
	return models.NewGrid(values)
}

// parseValue attempts to parse a string value as a number.
// Returns a number for integers and decimals, empty for "", or text.
func parseValue(s string) models.Value {
	if s == "" {
		return models.Empty()
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.NumberValue(float64(i))
	}
	// Try float, rejecting spellings such as "NaN" and "Inf"
	if f, err := strconv.ParseFloat(s, 64); err == nil && isPlainNumber(s) {
		return models.NumberValue(f)
	}
	return models.TextValue(norm.NFC.String(s))
}

func isPlainNumber(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}
