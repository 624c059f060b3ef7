package bodyparser

import "errors"

var (
	// ErrInvalidParsedBody is returned when a decoder produces a value that is
	// not nil, a mapping, a sequence or a Record.
	ErrInvalidParsedBody = errors.New("request body media type parser return value must be a map, a slice, a record, or nil")

	// ErrDecodeFailed wraps errors returned by a decoder.
	ErrDecodeFailed = errors.New("request body decoder failed")

	// ErrEntityDeclaration is reported for XML documents declaring entities
	// while the entity loader is disabled.
	ErrEntityDeclaration = errors.New("xml entity declarations are not allowed")

	// ErrNoRootElement is reported for XML input without a root element.
	ErrNoRootElement = errors.New("xml document has no root element")

	// ErrCharset is returned when a body cannot be converted to UTF-8.
	ErrCharset = errors.New("cannot convert request body charset")
)
