package models

// Grid is an immutable rectangular cell store addressed by 0-based (row, column).
type Grid struct {
	cells [][]Value
	cols  int
}

// NewGrid copies rows into a Grid, padding ragged rows with empty cells.
func NewGrid(rows [][]Value) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	cells := make([][]Value, len(rows))
	for r, row := range rows {
		padded := make([]Value, cols)
		copy(padded, row)
		cells[r] = padded
	}

	return &Grid{cells: cells, cols: cols}
}

// At returns the cell at (row, col). Positions outside the grid are empty.
func (g *Grid) At(row, col int) Value {
	if g == nil || row < 0 || col < 0 || row >= len(g.cells) || col >= g.cols {
		return Value{}
	}
	return g.cells[row][col]
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// Row returns a copy of row r, or nil when r is out of range.
func (g *Grid) Row(r int) []Value {
	if g == nil || r < 0 || r >= len(g.cells) {
		return nil
	}
	out := make([]Value, g.cols)
	copy(out, g.cells[r])
	return out
}

// Anchor is the position of a keyword match.
type Anchor struct {
	// Row is the 0-based row index.
	Row int `json:"row" yaml:"row"`
	// Col is the 0-based column index.
	Col int `json:"col" yaml:"col"`
}

// Offset returns the anchor moved by (dr, dc).
func (a Anchor) Offset(dr, dc int) Anchor {
	return Anchor{Row: a.Row + dr, Col: a.Col + dc}
}
