// Package parser pulls structured analyses out of free-form model replies.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a reply holds no decodable JSON object.
var ErrNoJSON = errors.New("no json object in response")

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// Object finds the first balanced top-level {...} block in raw and decodes it
// into a field map. Surrounding prose and code fences are ignored. A block
// that fails to decode is retried once with trailing commas removed.
func Object(raw string) (map[string]json.RawMessage, error) {
	block := firstBlock(raw)
	if block == "" {
		return nil, ErrNoJSON
	}

	var fields map[string]json.RawMessage
	err := json.Unmarshal([]byte(block), &fields)
	if err == nil {
		return fields, nil
	}
	if err2 := json.Unmarshal([]byte(trailingComma.ReplaceAllString(block, "$1")), &fields); err2 == nil {
		return fields, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrNoJSON, err)
}

func firstBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// The field helpers fall back to def whenever the value is missing, of the
// wrong type, or falsy (empty string, zero).

func str(fields map[string]json.RawMessage, key, def string) string {
	var v string
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &v) == nil && v != "" {
		return v
	}
	return def
}

func list(fields map[string]json.RawMessage, key string) []string {
	var v []string
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &v) == nil && v != nil {
		return v
	}
	return []string{}
}

// score reads a 0-100 number, clamping out-of-range values.
func score(fields map[string]json.RawMessage, key string, def float64) float64 {
	var v float64
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &v) == nil && v != 0 {
		return min(max(v, 0), 100)
	}
	return def
}
