package mediatype

import (
	"regexp"
	"strings"
)

var segmentSeparator = regexp.MustCompile(`\s*[;,]\s*`)

// MediaType is a parsed Content-Type header value.
type MediaType struct {
	// Type is the lowercased media type without parameters, e.g. "application/json".
	Type string
	// Params maps lowercased parameter names to their raw values.
	Params map[string]string
}

// Parse parses a raw Content-Type header value.
// An empty header yields a zero MediaType with an empty, non-nil Params map.
func Parse(contentType string) MediaType {
	mt := MediaType{Params: make(map[string]string)}

	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return mt
	}

	parts := segmentSeparator.Split(contentType, -1)
	mt.Type = strings.ToLower(parts[0])

	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		mt.Params[strings.ToLower(key)] = value
	}

	return mt
}

// IsZero reports whether no media type was present.
func (m MediaType) IsZero() bool {
	return m.Type == ""
}

// Charset returns the charset parameter or an empty string.
func (m MediaType) Charset() string {
	return m.Params["charset"]
}

// Suffix returns the structured-syntax suffix, the text after the last '+'.
func (m MediaType) Suffix() (string, bool) {
	idx := strings.LastIndex(m.Type, "+")
	if idx == -1 {
		return "", false
	}
	return m.Type[idx+1:], true
}

// SuffixFallback returns "application/<suffix>" for media types carrying a
// structured-syntax suffix.
func (m MediaType) SuffixFallback() (string, bool) {
	suffix, ok := m.Suffix()
	if !ok {
		return "", false
	}
	return "application/" + suffix, true
}

// String returns the essence, type/subtype without parameters.
func (m MediaType) String() string {
	return m.Type
}
