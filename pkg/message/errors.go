package message

import (
	"errors"

	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
)

var (
	ErrBodyTooLarge           = errors.New("request body too large")
	ErrReadBody               = errors.New("failed to read request body")
	ErrInvalidHeader          = errors.New("invalid header")
	ErrInvalidMethod          = errors.New("invalid http method")
	ErrInvalidProtocolVersion = errors.New("unsupported http protocol version")
	ErrInvalidRequestTarget   = errors.New("invalid request target")
	ErrInvalidURI             = errors.New("invalid uri")
	ErrMultipartForm          = errors.New("failed to parse multipart form")

	// ErrInvalidParsedBody is shared with bodyparser so a single errors.Is
	// check covers both injected and decoded bodies.
	ErrInvalidParsedBody = bodyparser.ErrInvalidParsedBody

	ErrNilFileHeader    = errors.New("uploaded file header is nil")
	ErrFailedToOpenFile = errors.New("failed to open uploaded file")
	ErrFailedToReadFile = errors.New("failed to read uploaded file")
)
