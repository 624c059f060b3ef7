package reqkit

import (
	"context"
	"net/url"

	"github.com/dmitrymomot/reqkit/pkg/message"
)

// Each mutator returns a new Request around the changed message. The
// receiver and its registry are left untouched.

// WithMethod returns a copy with the method replaced. The method must be
// a valid token; case is preserved.
func (r *Request) WithMethod(method string) (*Request, error) {
	msg, err := r.msg.WithMethod(method)
	if err != nil {
		return nil, err
	}
	return r.derive(msg), nil
}

// WithRequestTarget returns a copy with an explicit request target.
func (r *Request) WithRequestTarget(target string) (*Request, error) {
	msg, err := r.msg.WithRequestTarget(target)
	if err != nil {
		return nil, err
	}
	return r.derive(msg), nil
}

// WithProtocolVersion returns a copy with the HTTP version replaced.
func (r *Request) WithProtocolVersion(version string) (*Request, error) {
	msg, err := r.msg.WithProtocolVersion(version)
	if err != nil {
		return nil, err
	}
	return r.derive(msg), nil
}

// WithURI returns a copy with the URL replaced. With preserveHost set, an
// existing Host header is kept.
func (r *Request) WithURI(u *url.URL, preserveHost bool) *Request {
	return r.derive(r.msg.WithURI(u, preserveHost))
}

// WithHeader returns a copy with the named header replaced by values.
func (r *Request) WithHeader(name string, values ...string) (*Request, error) {
	msg, err := r.msg.WithHeader(name, values...)
	if err != nil {
		return nil, err
	}
	return r.derive(msg), nil
}

// WithAddedHeader returns a copy with values appended to the named header.
func (r *Request) WithAddedHeader(name string, values ...string) (*Request, error) {
	msg, err := r.msg.WithAddedHeader(name, values...)
	if err != nil {
		return nil, err
	}
	return r.derive(msg), nil
}

// WithoutHeader returns a copy without the named header.
func (r *Request) WithoutHeader(name string) *Request {
	return r.derive(r.msg.WithoutHeader(name))
}

// WithBody returns a copy with the raw body replaced.
func (r *Request) WithBody(body []byte) *Request {
	return r.derive(r.msg.WithBody(body))
}

// WithParsedBody injects a body that ParsedBody returns without decoding.
func (r *Request) WithParsedBody(body any) (*Request, error) {
	msg, err := r.msg.WithParsedBody(body)
	if err != nil {
		return nil, err
	}
	return r.derive(msg), nil
}

// WithQueryParams returns a copy with the query parameters replaced. A nil
// map makes QueryParams decode the URL query again.
func (r *Request) WithQueryParams(params map[string]any) *Request {
	return r.derive(r.msg.WithQueryParams(params))
}

// WithCookieParams returns a copy with the cookies replaced.
func (r *Request) WithCookieParams(cookies map[string]string) *Request {
	return r.derive(r.msg.WithCookieParams(cookies))
}

// WithUploadedFiles returns a copy with the uploaded files replaced.
func (r *Request) WithUploadedFiles(files map[string][]*message.UploadedFile) *Request {
	return r.derive(r.msg.WithUploadedFiles(files))
}

// WithAttribute returns a copy with the named attribute set.
func (r *Request) WithAttribute(name string, value any) *Request {
	return r.derive(r.msg.WithAttribute(name, value))
}

// WithAttributes returns a copy with the attribute bag replaced.
func (r *Request) WithAttributes(attrs map[string]any) *Request {
	return r.derive(r.msg.WithAttributes(attrs))
}

// WithoutAttribute returns a copy without the named attribute.
func (r *Request) WithoutAttribute(name string) *Request {
	return r.derive(r.msg.WithoutAttribute(name))
}

// WithContext returns a copy carrying ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	return r.derive(r.msg.WithContext(ctx))
}
