package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

func TestNormalizeString(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1,234", 1234},
		{"1,234,567", 1234567},
		{"(100)", -100},
		{"(1,234.5)", -1234.5},
		{" ( 100 ) ", -100},
		{"", 0},
		{"   ", 0},
		{"-", 0},
		{"nan", 0},
		{"NaN", 0},
		{"42", 42},
		{"-3.5", -3.5},
		{"abc", 0},
		{"12abc", 0},
		{"Inf", 0},
		{"1e400", 0},
		{"()", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeString(tt.input))
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, 42.0, Normalize(models.NumberValue(42)))
	assert.Equal(t, 0.0, Normalize(models.Empty()))
	assert.Equal(t, 0.0, Normalize(models.NumberValue(math.NaN())))
	assert.Equal(t, -100.0, Normalize(models.TextValue("(100)")))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"1,234", "(100)", "", "-", "abc", "0.25", "(x)", "nan", "9,9,9"}
	for _, in := range inputs {
		once := Normalize(models.TextValue(in))
		twice := Normalize(models.NumberValue(once))
		assert.Equal(t, once, twice, "input %q", in)
		assert.False(t, math.IsNaN(once))
	}
}

func TestParseNumberStrict(t *testing.T) {
	f, ok := ParseNumber("abc")
	assert.False(t, ok)
	assert.Equal(t, 0.0, f)

	f, ok = ParseNumber("-")
	assert.True(t, ok, "a lone dash is a blank, not dirty data")
	assert.Equal(t, 0.0, f)

	f, ok = ParseNumber("(2,500)")
	assert.True(t, ok)
	assert.Equal(t, -2500.0, f)
}

func TestCoerce(t *testing.T) {
	v, ok := Coerce(models.TextValue("abc"), false)
	assert.True(t, v.IsNumber())
	assert.Equal(t, 0.0, v.Number)
	assert.False(t, ok)

	v, ok = Coerce(models.TextValue("abc"), true)
	assert.False(t, ok)
	assert.Equal(t, models.UnparsedValue("abc"), v)

	v, ok = Coerce(models.TextValue("1,000"), true)
	assert.True(t, ok)
	assert.Equal(t, models.NumberValue(1000), v)
}
