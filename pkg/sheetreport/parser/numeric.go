package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
)

// Normalize converts a cell value to a number. It never fails: blanks, "nan",
// a lone "-" and anything unparsable become 0.
func Normalize(v models.Value) float64 {
	f, _ := normalize(v)
	return f
}

// NormalizeString is Normalize for raw text.
func NormalizeString(s string) float64 {
	f, _ := ParseNumber(s)
	return f
}

// ParseNumber parses report-style numeric text: thousands separators are
// dropped and "(100)" reads as -100. ok is false only when the text is not
// blank-like and still is not a finite number; f is 0 in that case.
func ParseNumber(s string) (f float64, ok bool) {
	s = strings.TrimSpace(s)
	if isBlankToken(s) {
		return 0, true
	}

	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSpace(s[1:len(s)-1])
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Coerce converts v to a numeric Value. In strict mode a value that cannot be
// parsed becomes an unparsed marker carrying the raw text and ok is false.
func Coerce(v models.Value, strict bool) (out models.Value, ok bool) {
	f, ok := normalize(v)
	if !ok && strict {
		return models.UnparsedValue(v.Text), false
	}
	return models.NumberValue(f), ok
}

func normalize(v models.Value) (float64, bool) {
	switch v.Kind {
	case models.KindNumber:
		if math.IsNaN(v.Number) {
			return 0, true
		}
		return v.Number, true
	case models.KindText, models.KindUnparsed:
		return ParseNumber(v.Text)
	}
	return 0, true
}

func isBlankToken(s string) bool {
	return s == "" || s == "-" || strings.EqualFold(s, "nan")
}
