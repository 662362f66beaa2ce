package parser

import (
	"fmt"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"github.com/xuri/excelize/v2"
)

// cellRange converts 0-based inclusive bounds to Excel range notation (e.g. "A1:D10").
// It returns "" when the bounds are empty.
func cellRange(minRow, minCol, maxRow, maxCol int) string {
	if minRow < 0 || minCol < 0 || maxRow < minRow || maxCol < minCol {
		return ""
	}
	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// columnName returns the spreadsheet letter for a 0-based column index.
func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Sprintf("Column%d", col+1)
	}
	return name
}

// lastNonEmptyColumn returns the index of the last non-blank cell in row r, or -1.
func lastNonEmptyColumn(g *models.Grid, r int) int {
	for c := g.Cols() - 1; c >= 0; c-- {
		if !g.At(r, c).IsBlank() {
			return c
		}
	}
	return -1
}

// findDataBounds finds the bounding box of non-blank cells in rows [fromRow, toRow).
// minRow is -1 when the block is empty.
func findDataBounds(g *models.Grid, fromRow, toRow int) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for r := fromRow; r < toRow && r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.At(r, c).IsBlank() {
				continue
			}
			if minRow < 0 || r < minRow {
				minRow = r
			}
			if maxRow < 0 || r > maxRow {
				maxRow = r
			}
			if minCol < 0 || c < minCol {
				minCol = c
			}
			if maxCol < 0 || c > maxCol {
				maxCol = c
			}
		}
	}

	return
}
