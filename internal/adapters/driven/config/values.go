// Package config converts loosely typed configuration values.
//
// Values reach the config stores as TOML types (int64, float64, []any),
// as Go values set by services, or as strings from the environment. The
// helpers here accept all three and fall back to the zero value.
package config

import (
	"strconv"
	"strings"
)

// String returns v if it is a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int converts integers, floats (truncated) and numeric strings.
func Int(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// Float converts floats, integers and numeric strings.
func Float(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Bool converts booleans and strconv.ParseBool strings.
func Bool(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

// StringSlice converts string slices, TOML arrays and comma separated
// strings. The result never aliases v.
func StringSlice(v any) []string {
	switch v := v.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}
