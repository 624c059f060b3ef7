package message

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
)

var protocolVersions = map[string]bool{
	"1.0": true,
	"1.1": true,
	"2":   true,
	"2.0": true,
	"3":   true,
	"3.0": true,
}

// WithMethod returns a copy with method. It must be a valid token.
func (r *Request) WithMethod(method string) (ServerRequest, error) {
	if err := validateMethod(method); err != nil {
		return nil, err
	}
	c := r.clone()
	c.method = method
	return c, nil
}

// WithRequestTarget returns a copy with an explicit request target.
func (r *Request) WithRequestTarget(target string) (ServerRequest, error) {
	if err := validateRequestTarget(target); err != nil {
		return nil, err
	}
	c := r.clone()
	c.target = target
	return c, nil
}

// WithProtocolVersion returns a copy with version, one of 1.0, 1.1, 2 or 3.
func (r *Request) WithProtocolVersion(version string) (ServerRequest, error) {
	if err := validateProtocolVersion(version); err != nil {
		return nil, err
	}
	c := r.clone()
	c.protocol = version
	return c, nil
}

// WithURI replaces the URI. Unless preserveHost is set, a host in u replaces
// the Host header. With preserveHost the Host header is only filled in when
// it is missing and u carries a host.
func (r *Request) WithURI(u *url.URL, preserveHost bool) ServerRequest {
	c := r.clone()
	cp := *u
	c.uri = &cp
	if u.Host == "" {
		return c
	}
	if preserveHost && c.headers.Get("Host") != "" {
		return c
	}
	c.headers.Set("Host", u.Host)
	return c
}

// WithHeader replaces the named header. No values sets a single empty value.
func (r *Request) WithHeader(name string, values ...string) (ServerRequest, error) {
	if len(values) == 0 {
		values = []string{""}
	}
	if err := validateHeader(name, values); err != nil {
		return nil, err
	}
	c := r.clone()
	c.headers.Del(name)
	for _, v := range values {
		c.headers.Add(name, v)
	}
	return c, nil
}

// WithAddedHeader appends values to the named header.
func (r *Request) WithAddedHeader(name string, values ...string) (ServerRequest, error) {
	if err := validateHeader(name, values); err != nil {
		return nil, err
	}
	c := r.clone()
	for _, v := range values {
		c.headers.Add(name, v)
	}
	return c, nil
}

// WithoutHeader returns a copy without the named header.
func (r *Request) WithoutHeader(name string) ServerRequest {
	c := r.clone()
	c.headers.Del(name)
	return c
}

// WithBody returns a copy with the raw body replaced.
func (r *Request) WithBody(body []byte) ServerRequest {
	c := r.clone()
	c.body = body
	return c
}

// WithQueryParams returns a copy with the query parameters replaced.
func (r *Request) WithQueryParams(params map[string]any) ServerRequest {
	c := r.clone()
	c.query = orEmpty(maps.Clone(params))
	return c
}

// WithCookieParams returns a copy with the cookies replaced.
func (r *Request) WithCookieParams(cookies map[string]string) ServerRequest {
	c := r.clone()
	c.cookies = orEmpty(maps.Clone(cookies))
	return c
}

// WithUploadedFiles returns a copy with the uploaded files replaced.
func (r *Request) WithUploadedFiles(files map[string][]*UploadedFile) ServerRequest {
	c := r.clone()
	c.files = orEmpty(maps.Clone(files))
	return c
}

// WithParsedBody injects a parsed body. It must pass bodyparser.ValidateShape.
func (r *Request) WithParsedBody(body any) (ServerRequest, error) {
	if err := bodyparser.ValidateShape(body); err != nil {
		return nil, err
	}
	c := r.clone()
	c.parsedBody = body
	return c, nil
}

// WithAttribute returns a copy with the named attribute set.
func (r *Request) WithAttribute(name string, value any) ServerRequest {
	c := r.clone()
	c.attrs[name] = value
	return c
}

// WithAttributes sets several attributes at once.
func (r *Request) WithAttributes(attrs map[string]any) ServerRequest {
	c := r.clone()
	maps.Copy(c.attrs, attrs)
	return c
}

// WithoutAttribute returns a copy without the named attribute.
func (r *Request) WithoutAttribute(name string) ServerRequest {
	c := r.clone()
	delete(c.attrs, name)
	return c
}

// WithContext replaces the request context. A nil ctx is ignored.
func (r *Request) WithContext(ctx context.Context) ServerRequest {
	c := r.clone()
	if ctx != nil {
		c.ctx = ctx
	}
	return c
}

func validateMethod(method string) error {
	// methods share the header field-name token grammar
	if !httpguts.ValidHeaderFieldName(method) {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	return nil
}

func validateRequestTarget(target string) error {
	if target == "" || strings.ContainsAny(target, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidRequestTarget, target)
	}
	return nil
}

func validateProtocolVersion(version string) error {
	if !protocolVersions[version] {
		return fmt.Errorf("%w: %q", ErrInvalidProtocolVersion, version)
	}
	return nil
}

func validateHeader(name string, values []string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: name %q", ErrInvalidHeader, name)
	}
	for _, v := range values {
		if !httpguts.ValidHeaderFieldValue(v) {
			return fmt.Errorf("%w: value for %q", ErrInvalidHeader, name)
		}
	}
	return nil
}
