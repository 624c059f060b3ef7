package reqkit

import (
	"errors"

	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
)

var (
	// ErrInvalidParsedBody is returned when a decoder produces a value other
	// than nil, a map, a list or a record.
	ErrInvalidParsedBody = bodyparser.ErrInvalidParsedBody

	// ErrDecodeFailed wraps errors returned by a registered decoder.
	ErrDecodeFailed = bodyparser.ErrDecodeFailed

	ErrNoRequest = errors.New("no request to wrap")
)
