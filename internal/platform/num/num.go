// Package num parses loosely typed spreadsheet values into float64.
//
// Values arrive from JSON bodies, workbook cells and database rows, so the
// same column may hold a float64, an int, a json.Number or a string.
package num

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Parse returns v as a finite float64. ok is false for nil, empty,
// non-numeric and non-finite input.
func Parse(v any) (f float64, ok bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		return parseString(string(t))
	case string:
		return parseString(t)
	case []byte:
		return parseString(string(t))
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SafeNumber returns v as a float64, or def when v is missing or not numeric.
// Commas are not treated as decimal separators here; see DecimalComma.
func SafeNumber(v any, def float64) float64 {
	if f, ok := Parse(v); ok {
		return f
	}
	return def
}

// DecimalComma parses reference-table values that may use a comma as the
// decimal separator ("1,25" -> 1.25). Only the first comma is replaced.
func DecimalComma(v any) (float64, bool) {
	s, isString := v.(string)
	if !isString {
		return Parse(v)
	}
	return parseString(strings.Replace(s, ",", ".", 1))
}

// Positive returns v when it parses to a value > 0, otherwise def.
func Positive(v any, def float64) float64 {
	if f, ok := Parse(v); ok && f > 0 {
		return f
	}
	return def
}

func parseString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatKey renders an identifier value as a trimmed string so numeric and
// string ids compare equal (101, 101.0 and "101" all become "101").
func FormatKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return strings.TrimSpace(t.String())
	case []byte:
		return strings.TrimSpace(string(t))
	case bool:
		return strconv.FormatBool(t)
	}

	if f, ok := Parse(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
