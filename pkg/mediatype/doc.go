// Package mediatype parses Content-Type header values into a normalized media
// type and its parameters.
//
// The parser is intentionally lenient: header values come from clients and may
// be malformed, so Parse never fails. Segments are separated by ';' or ','
// (with optional surrounding whitespace). The first segment is the media type,
// lowercased. Every following segment of the form key=value becomes a
// parameter with a lowercased key and the raw value. Segments without '=' are
// skipped.
//
// # Usage
//
//	mt := mediatype.Parse("Application/JSON; charset=UTF-8")
//	mt.Type            // "application/json"
//	mt.Charset()       // "UTF-8"
//
// Structured-syntax suffixes (RFC 6839) are exposed through Suffix and
// SuffixFallback:
//
//	mt := mediatype.Parse("application/vnd.api+json")
//	mt.SuffixFallback() // "application/json", true
package mediatype
