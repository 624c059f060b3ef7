package bodyparser

import (
	"fmt"
	"strconv"
)

// Record is an object-like decoded body.
type Record interface {
	// Field returns the named property.
	Field(name string) (any, bool)
	// Fields returns all properties as a map.
	Fields() map[string]any
}

// ValidateShape checks that v is one of the decoded body shapes: nil, a map,
// a Record, or a sequence whose elements are nil or structured themselves.
// A sequence holding a scalar is rejected.
func ValidateShape(v any) error {
	switch b := v.(type) {
	case nil, map[string]any, Record:
		return nil
	case []any:
		for i, el := range b {
			if err := ValidateShape(el); err != nil {
				return fmt.Errorf("%w: element %d is %T", ErrInvalidParsedBody, i, el)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: got %T", ErrInvalidParsedBody, v)
	}
}

// structured reports whether v is a valid decoded body other than nil.
func structured(v any) bool {
	return v != nil && ValidateShape(v) == nil
}

// Lookup returns the value stored under key in a decoded body.
// Nil map and sequence entries count as absent.
func Lookup(body any, key string) (any, bool) {
	switch b := body.(type) {
	case map[string]any:
		v, ok := b[key]
		return v, ok && v != nil
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(b) || strconv.Itoa(idx) != key {
			return nil, false
		}
		return b[idx], b[idx] != nil
	case Record:
		return b.Field(key)
	default:
		return nil, false
	}
}

// ToMap converts a decoded body into a new map. Sequences are keyed by their
// decimal index. Nil and unknown shapes yield nil.
func ToMap(body any) map[string]any {
	switch b := body.(type) {
	case map[string]any:
		m := make(map[string]any, len(b))
		for k, v := range b {
			m[k] = v
		}
		return m
	case []any:
		m := make(map[string]any, len(b))
		for i, v := range b {
			m[strconv.Itoa(i)] = v
		}
		return m
	case Record:
		return b.Fields()
	default:
		return nil
	}
}

// IsEmpty reports whether a decoded body carries no entries.
// Records are never empty.
func IsEmpty(body any) bool {
	switch b := body.(type) {
	case nil:
		return true
	case map[string]any:
		return len(b) == 0
	case []any:
		return len(b) == 0
	case Record:
		return false
	default:
		return true
	}
}
