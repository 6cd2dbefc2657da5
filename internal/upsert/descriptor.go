package upsert

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Descriptor is one JSON object describing a child record.
type Descriptor map[string]any

// ParseDescriptors decodes a JSON array of objects. Absent, malformed or
// non-array input yields an empty list rather than an error.
func ParseDescriptors(raw string) []Descriptor {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var list []Descriptor
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	out := list[:0]
	for _, d := range list {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// DescriptorsFromJSON accepts a JSON body value that is either the array itself
// or a string holding the encoded array.
func DescriptorsFromJSON(raw json.RawMessage) []Descriptor {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return nil
		}
		return ParseDescriptors(s)
	}
	return ParseDescriptors(trimmed)
}

// String returns key as a string if it holds one.
func (d Descriptor) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Number returns key as a finite float, accepting JSON numbers and numeric strings.
func (d Descriptor) Number(key string) (float64, bool) {
	var n float64
	switch v := d[key].(type) {
	case float64:
		n = v
	case string:
		var err error
		if n, err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
