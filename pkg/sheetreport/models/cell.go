// Package models defines data structures for report extraction.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies what a cell Value holds.
type Kind uint8

const (
	// KindEmpty is an absent cell.
	KindEmpty Kind = iota
	// KindText is a text cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
	// KindUnparsed marks a value column cell whose text could not be read as a number.
	// It is only produced in strict mode.
	KindUnparsed
)

// Value is a single cell value.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
}

// Empty returns an absent value.
func Empty() Value {
	return Value{}
}

// TextValue returns a text value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// NumberValue returns a numeric value.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// UnparsedValue returns a strict-mode marker carrying the raw text.
func UnparsedValue(raw string) Value {
	return Value{Kind: KindUnparsed, Text: raw}
}

// IsEmpty reports whether the cell is absent.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// IsNumber reports whether the cell holds a number.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// IsBlank reports whether the cell is absent or whitespace-only text.
func (v Value) IsBlank() bool {
	switch v.Kind {
	case KindEmpty:
		return true
	case KindText, KindUnparsed:
		return strings.TrimSpace(v.Text) == ""
	}
	return false
}

// String returns the text form of the value. Numbers use the shortest
// representation that round-trips; absent cells are "".
func (v Value) String() string {
	switch v.Kind {
	case KindText, KindUnparsed:
		return v.Text
	case KindNumber:
		return formatNumber(v.Number)
	}
	return ""
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Interface returns the value as nil, string, float64, or an unparsed marker map.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Number
	case KindUnparsed:
		return map[string]string{"unparsed": v.Text}
	}
	return nil
}

// MarshalJSON encodes empty as null, text as a string and numbers as numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindNumber && (math.IsNaN(v.Number) || math.IsInf(v.Number, 0)) {
		return []byte("null"), nil
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromInterface(raw)
	return nil
}

// MarshalYAML encodes the value like MarshalJSON.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}

func fromInterface(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Empty()
	case string:
		return TextValue(t)
	case float64:
		return NumberValue(t)
	case map[string]interface{}:
		if s, ok := t["unparsed"].(string); ok {
			return UnparsedValue(s)
		}
	}
	return Empty()
}
