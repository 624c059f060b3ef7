package message

import (
	"context"
	"fmt"
	"maps"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/reqkit/pkg/qs"
)

// Request is the default ServerRequest implementation.
type Request struct {
	method     string
	target     string
	uri        *url.URL
	protocol   string
	headers    http.Header
	body       []byte
	query      map[string]any
	cookies    map[string]string
	server     map[string]any
	files      map[string][]*UploadedFile
	parsedBody any
	attrs      map[string]any
	ctx        context.Context

	// shared by every copy; holds temporary files of a multipart upload
	form *multipart.Form
}

// New builds a Request for method and target. Target may be an absolute URL
// or an origin-form path with an optional query. Query parameters are decoded
// from the target; the Host header is taken from the URL when not provided.
func New(method, target string, opts ...Option) (*Request, error) {
	if err := validateMethod(method); err != nil {
		return nil, err
	}
	if err := validateRequestTarget(target); err != nil {
		return nil, err
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}

	o := newOptions(opts)
	if err := validateProtocolVersion(o.protocol); err != nil {
		return nil, err
	}
	headers := o.headers
	if headers == nil {
		headers = make(http.Header)
	}
	for name, values := range headers {
		if err := validateHeader(name, values); err != nil {
			return nil, err
		}
	}
	if headers.Get("Host") == "" && u.Host != "" {
		headers.Set("Host", u.Host)
	}

	ctx := o.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	return &Request{
		method:   method,
		uri:      u,
		protocol: o.protocol,
		headers:  headers,
		body:     o.body,
		query:    qs.Parse(u.RawQuery, o.queryOpts...),
		cookies:  orEmpty(o.cookies),
		server:   orEmpty(o.serverParams),
		files:    map[string][]*UploadedFile{},
		attrs:    orEmpty(o.attrs),
		ctx:      ctx,
	}, nil
}

// Method returns the HTTP method as given.
func (r *Request) Method() string { return r.method }

// RequestTarget returns the explicit request target or, when none was set,
// the origin form derived from the URI.
func (r *Request) RequestTarget() string {
	if r.target != "" {
		return r.target
	}
	target := r.uri.EscapedPath()
	if target == "" {
		target = "/"
	}
	if r.uri.RawQuery != "" {
		target += "?" + r.uri.RawQuery
	}
	return target
}

// ProtocolVersion returns the HTTP version, e.g. "1.1".
func (r *Request) ProtocolVersion() string { return r.protocol }

// URI returns a copy of the request URI.
func (r *Request) URI() *url.URL {
	u := *r.uri
	return &u
}

// Header returns all values of the named header, case-insensitively.
func (r *Request) Header(name string) []string {
	return r.headers.Values(name)
}

// HeaderLine returns the values of the named header joined by commas.
func (r *Request) HeaderLine(name string) string {
	return strings.Join(r.headers.Values(name), ",")
}

// HasHeader reports whether the named header has any value.
func (r *Request) HasHeader(name string) bool {
	return len(r.headers.Values(name)) > 0
}

// Headers returns a copy of all headers.
func (r *Request) Headers() http.Header { return r.headers.Clone() }

// Body returns the buffered body. Callers must not modify it.
func (r *Request) Body() []byte { return r.body }

// QueryParams returns a copy of the decoded query parameters.
func (r *Request) QueryParams() map[string]any { return maps.Clone(r.query) }

// CookieParams returns a copy of the cookies.
func (r *Request) CookieParams() map[string]string { return maps.Clone(r.cookies) }

// ServerParams returns a copy of the server parameters.
func (r *Request) ServerParams() map[string]any { return maps.Clone(r.server) }

// UploadedFiles returns the uploaded files keyed by form field.
func (r *Request) UploadedFiles() map[string][]*UploadedFile { return maps.Clone(r.files) }

// ParsedBody returns the injected parsed body, or nil.
func (r *Request) ParsedBody() any { return r.parsedBody }

// Attribute returns the named attribute or def when it is not set.
func (r *Request) Attribute(name string, def any) any {
	if v, ok := r.attrs[name]; ok {
		return v
	}
	return def
}

// Attributes returns a copy of the attribute bag.
func (r *Request) Attributes() map[string]any { return maps.Clone(r.attrs) }

// Context returns the request context.
func (r *Request) Context() context.Context { return r.ctx }

// Cleanup removes temporary files created for multipart uploads.
// It is safe to call on any copy and more than once.
func (r *Request) Cleanup() error {
	if r.form == nil {
		return nil
	}
	return r.form.RemoveAll()
}

func (r *Request) clone() *Request {
	c := *r
	c.headers = r.headers.Clone()
	if c.headers == nil {
		c.headers = make(http.Header)
	}
	c.attrs = maps.Clone(r.attrs)
	if c.attrs == nil {
		c.attrs = make(map[string]any)
	}
	return &c
}

func orEmpty[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return m
}
