package message

import (
	"context"
	"net/http"
	"net/url"
)

// ServerRequest is the read and copy-on-write contract of a server request
// message. Mutators never modify the receiver.
type ServerRequest interface {
	Method() string
	RequestTarget() string
	ProtocolVersion() string
	URI() *url.URL

	Header(name string) []string
	HeaderLine(name string) string
	HasHeader(name string) bool
	Headers() http.Header

	Body() []byte
	QueryParams() map[string]any
	CookieParams() map[string]string
	ServerParams() map[string]any
	UploadedFiles() map[string][]*UploadedFile
	ParsedBody() any

	Attribute(name string, def any) any
	Attributes() map[string]any
	Context() context.Context

	WithMethod(method string) (ServerRequest, error)
	WithRequestTarget(target string) (ServerRequest, error)
	WithProtocolVersion(version string) (ServerRequest, error)
	WithURI(u *url.URL, preserveHost bool) ServerRequest
	WithHeader(name string, values ...string) (ServerRequest, error)
	WithAddedHeader(name string, values ...string) (ServerRequest, error)
	WithoutHeader(name string) ServerRequest
	WithBody(body []byte) ServerRequest
	WithQueryParams(params map[string]any) ServerRequest
	WithCookieParams(cookies map[string]string) ServerRequest
	WithUploadedFiles(files map[string][]*UploadedFile) ServerRequest
	WithParsedBody(body any) (ServerRequest, error)
	WithAttribute(name string, value any) ServerRequest
	WithAttributes(attrs map[string]any) ServerRequest
	WithoutAttribute(name string) ServerRequest
	WithContext(ctx context.Context) ServerRequest
}

var _ ServerRequest = (*Request)(nil)
