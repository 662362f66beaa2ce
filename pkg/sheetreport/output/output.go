// Package output serializes extracted reports.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/models"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be json or yaml)", s)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ToJSON serializes a report to JSON.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	return marshalJSON(report, pretty)
}

// SectionToJSON serializes a single section to JSON.
func SectionToJSON(section *models.Section, pretty bool) ([]byte, error) {
	return marshalJSON(section, pretty)
}

// ToYAML serializes a report to YAML.
func ToYAML(report *models.Report) ([]byte, error) {
	return marshalYAML(report)
}

// Encode serializes v (a report or section) in the given format.
// pretty only affects JSON.
func Encode(v interface{}, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		return marshalYAML(v)
	case FormatJSON, "":
		return marshalJSON(v, pretty)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func marshalJSON(v interface{}, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Labels such as "P&L" are written as is.
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
