package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

// sheet builds a grid from string rows typed the way the xlsx loader types them.
func sheet(rows ...[]string) *models.Grid {
	return GridFromRows(rows)
}

// blank returns n empty cells.
func blank(n int) []string {
	return make([]string, n)
}

func TestFindFirstInRowMajorOrder(t *testing.T) {
	rows := make([][]string, 5)
	for i := range rows {
		rows[i] = blank(6)
	}
	rows[2][5] = "daily PnL (KRW)"
	rows[3][1] = "daily PnL"

	at, ok := Find(GridFromRows(rows), "daily PnL")
	assert.True(t, ok)
	assert.Equal(t, models.Anchor{Row: 2, Col: 5}, at)
}

func TestFindSubstringAndTrim(t *testing.T) {
	g := sheet(
		[]string{"", "  원화 잔고(억)  ", "1,200"},
	)

	at, ok := Find(g, "원화 잔고")
	assert.True(t, ok)
	assert.Equal(t, models.Anchor{Row: 0, Col: 1}, at)

	_, ok = Find(g, "원화 잔고 ")
	assert.False(t, ok, "cell text is trimmed before matching")
}

func TestFindCaseSensitive(t *testing.T) {
	g := sheet([]string{"Daily pnl"})
	_, ok := Find(g, "daily PnL")
	assert.False(t, ok)
}

func TestFindNotFound(t *testing.T) {
	g := sheet([]string{"a", "b"}, []string{"c", "d"})
	at, ok := Find(g, "zzz")
	assert.False(t, ok)
	assert.Equal(t, models.Anchor{}, at)

	_, ok = Find(models.NewGrid(nil), "a")
	assert.False(t, ok)
}

func TestFindMatchesNumbers(t *testing.T) {
	g := sheet([]string{"x", "20251222"})
	at, ok := Find(g, "2025")
	assert.True(t, ok)
	assert.Equal(t, 1, at.Col)
}

func TestFindWithin(t *testing.T) {
	g := sheet(
		[]string{"a"},
		[]string{"b"},
		[]string{"target"},
	)

	_, ok := FindWithin(g, "target", 2)
	assert.False(t, ok)

	at, ok := FindWithin(g, "target", 3)
	assert.True(t, ok)
	assert.Equal(t, 2, at.Row)

	_, ok = FindWithin(g, "target", 0)
	assert.True(t, ok, "a non-positive bound scans everything")
}
