package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// lookup returns the value stored under key when it is present and not null
func lookup(record map[string]any, key string) (any, bool) {
	if record == nil {
		return nil, false
	}
	v, ok := record[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// asNumber returns v as a float64 only when v already is a number.
// Numeric strings are not numbers here.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// asBool returns v when it is a boolean
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// toNumber coerces numbers, numeric strings and booleans to a float64.
// Anything else, including NaN and infinities, becomes 0.
func toNumber(v any) float64 {
	var f float64
	if n, ok := asNumber(v); ok {
		f = n
	} else {
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				return 0
			}
			parsed, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0
			}
			f = parsed
		case bool:
			if t {
				return 1
			}
			return 0
		default:
			return 0
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// truthy mirrors the loose truthiness upstream feeds rely on for optional text fields
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}
	if n, ok := asNumber(v); ok {
		return n != 0 && !math.IsNaN(n)
	}
	return true
}

// stringify renders scalar identifiers and labels as strings.
// Integral numbers are rendered without a fractional part ("1", not "1.000000").
// Objects and lists are not scalars and report false.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	}
	if n, ok := asNumber(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}
