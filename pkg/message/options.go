package message

import (
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/qs"
)

const (
	DefaultMaxBodyBytes       int64 = 10 << 20
	DefaultMaxMultipartMemory int64 = 32 << 20
	DefaultProtocolVersion          = "1.1"
)

// Option configures a Request built by New or FromHTTP.
type Option func(*options)

type options struct {
	headers            http.Header
	body               []byte
	protocol           string
	cookies            map[string]string
	serverParams       map[string]any
	attrs              map[string]any
	ctx                context.Context
	maxBodyBytes       int64
	maxMultipartMemory int64
	now                func() time.Time
	queryOpts          []qs.Option
}

func newOptions(opts []Option) options {
	o := options{
		protocol:           DefaultProtocolVersion,
		maxBodyBytes:       DefaultMaxBodyBytes,
		maxMultipartMemory: DefaultMaxMultipartMemory,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHeaders sets the initial headers. Used by New only.
func WithHeaders(h http.Header) Option {
	return func(o *options) { o.headers = h.Clone() }
}

// WithContent sets the raw body. Used by New only.
func WithContent(body []byte) Option {
	return func(o *options) { o.body = body }
}

// WithProtocol sets the protocol version. Used by New only.
func WithProtocol(version string) Option {
	return func(o *options) { o.protocol = version }
}

// WithCookies sets the cookie parameters. Used by New only.
func WithCookies(cookies map[string]string) Option {
	return func(o *options) { o.cookies = maps.Clone(cookies) }
}

// WithServerParams adds server parameters. For FromHTTP they are merged over
// the derived ones.
func WithServerParams(params map[string]any) Option {
	return func(o *options) {
		if o.serverParams == nil {
			o.serverParams = make(map[string]any, len(params))
		}
		maps.Copy(o.serverParams, params)
	}
}

// WithAttributes sets the initial attribute bag.
func WithAttributes(attrs map[string]any) Option {
	return func(o *options) { o.attrs = maps.Clone(attrs) }
}

// WithRequestContext sets the request context. Used by New only.
func WithRequestContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithMaxBodyBytes limits how much of the body FromHTTP buffers.
// Non-positive values are ignored.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithMaxMultipartMemory limits the memory used for multipart file parts
// before they spill to temporary files. Non-positive values are ignored.
func WithMaxMultipartMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMultipartMemory = n
		}
	}
}

// WithClock overrides the time source for REQUEST_TIME server params.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithQueryOptions sets the limits used to decode the query string and
// multipart form values.
func WithQueryOptions(opts ...qs.Option) Option {
	return func(o *options) { o.queryOpts = append(o.queryOpts, opts...) }
}
