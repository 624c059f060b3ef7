// Package bodyparser maps media types to request body decoders.
//
// A Registry holds one Decoder per media type. Lookup resolves a media type by
// exact match first and, for types carrying a structured-syntax suffix
// (RFC 6839), retries once with "application/<suffix>", so
// "application/vnd.api+json" is served by the "application/json" decoder
// unless a more specific one is registered.
//
// # Decoders
//
// A Decoder turns raw body bytes into one of the decoded shapes:
//
//   - nil: the body could not be decoded (absence, not an error)
//   - map[string]any: a structured mapping
//   - []any: a structured sequence whose elements are nil or structured
//   - Record: an object-like value such as *XMLElement
//
// Returning any other shape is a contract violation that ValidateShape reports
// as ErrInvalidParsedBody. Malformed input must be absorbed by the decoder and
// reported as nil; a non-nil error is reserved for failures the caller has to
// see.
//
// Defaults seeds a registry with the four standard decoders:
//
//	application/json                   JSON()
//	application/xml, text/xml          XML()
//	application/x-www-form-urlencoded  Form()
//
// YAML() is available for callers that want to register "application/yaml".
//
// # XML safety
//
// XML decoding runs inside a scope that disables the process-wide entity
// loader and switches error reporting to internal collection. Both settings
// are restored to their previous values, and collected errors are cleared, on
// every exit path. XML scopes are serialized across goroutines.
//
// # Concurrency
//
// Registry methods are safe for concurrent use.
package bodyparser
