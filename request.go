package reqkit

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/mediatype"
	"github.com/dmitrymomot/reqkit/pkg/message"
	"github.com/dmitrymomot/reqkit/pkg/qs"
)

// Request decorates a message.ServerRequest with body decoding, parameter
// lookup and method predicates.
//
// A Request is immutable except for its decoder registry: every With*
// method returns a new Request holding a copy of the registry, while
// RegisterMediaTypeParser changes the receiver's registry in place. The
// registry is lock-guarded; the rest of the Request is meant to be used by
// one goroutine at a time.
type Request struct {
	msg       message.ServerRequest
	registry  *bodyparser.Registry
	logger    *slog.Logger
	transcode bool
	qsOpts    []qs.Option
}

// Wrap decorates msg. It panics if msg is nil.
func Wrap(msg message.ServerRequest, opts ...Option) *Request {
	if msg == nil {
		panic(ErrNoRequest)
	}
	o := newOptions(opts)
	return &Request{
		msg:       msg,
		registry:  o.newRegistry(),
		logger:    o.componentLogger(),
		transcode: !o.cfg.DisableCharsetTranscoding,
		qsOpts:    o.queryOptions(),
	}
}

// FromHTTP buffers r into a message.Request and wraps it.
// It returns message.ErrBodyTooLarge when the body exceeds the configured
// limit.
func FromHTTP(r *http.Request, opts ...Option) (*Request, error) {
	if r == nil {
		return nil, ErrNoRequest
	}
	o := newOptions(opts)
	msg, err := message.FromHTTP(r,
		message.WithMaxBodyBytes(o.cfg.MaxBodyBytes),
		message.WithMaxMultipartMemory(o.cfg.MaxMultipartMemory),
		message.WithQueryOptions(o.queryOptions()...),
	)
	if err != nil {
		return nil, err
	}
	return Wrap(msg, opts...), nil
}

// derive wraps msg with a copy of the receiver's registry.
func (r *Request) derive(msg message.ServerRequest) *Request {
	return &Request{
		msg:       msg,
		registry:  r.registry.Clone(),
		logger:    r.logger,
		transcode: r.transcode,
		qsOpts:    r.qsOpts,
	}
}

// RegisterMediaTypeParser registers d for mediaType on this Request and
// returns the receiver. It is the only method that mutates a Request.
func (r *Request) RegisterMediaTypeParser(mediaType string, d bodyparser.Decoder) *Request {
	r.registry.Register(mediaType, d)
	return r
}

// RegisterMediaTypeParserFunc is RegisterMediaTypeParser for plain functions.
func (r *Request) RegisterMediaTypeParserFunc(mediaType string, fn func(raw []byte) (any, error)) *Request {
	return r.RegisterMediaTypeParser(mediaType, bodyparser.DecoderFunc(fn))
}

// MediaTypes lists the media types this Request can decode.
func (r *Request) MediaTypes() []string { return r.registry.MediaTypes() }

// ParsedBody returns the decoded body.
//
// A parsed body injected into the message wins. Otherwise the decoder for
// the Content-Type media type is used, falling back once from a structured
// syntax suffix such as application/vnd.api+json to application/json.
// Missing or unsupported media types and undecodable bodies yield nil.
// Decoder errors are wrapped in ErrDecodeFailed, and results other than nil,
// a map, a record or a list of those yield ErrInvalidParsedBody. Nothing is
// cached.
func (r *Request) ParsedBody() (any, error) {
	if body := r.msg.ParsedBody(); body != nil {
		return body, nil
	}

	mt := r.mediaType()
	if mt.Type == "" {
		return nil, nil
	}
	decoder, resolved, ok := r.registry.Lookup(mt.Type)
	if !ok {
		return nil, nil
	}

	raw := r.msg.Body()
	if r.transcode && !bodyparser.HandlesCharset(decoder) {
		utf8, err := bodyparser.ToUTF8(raw, mt.Charset())
		if err != nil {
			r.logger.DebugContext(r.Context(), "request body charset conversion failed",
				logger.MediaType(mt.Type), logger.Error(err))
			return nil, nil
		}
		raw = utf8
	}

	parsed, err := decoder.Decode(raw)
	if err != nil {
		r.logger.DebugContext(r.Context(), "request body decoder failed",
			logger.MediaType(resolved), logger.BodySize(len(raw)), logger.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, resolved, err)
	}
	if err := bodyparser.ValidateShape(parsed); err != nil {
		r.logger.WarnContext(r.Context(), "request body decoder returned invalid value",
			logger.MediaType(resolved), logger.Error(err))
		return nil, err
	}
	return parsed, nil
}

func (r *Request) mediaType() mediatype.MediaType {
	return mediatype.Parse(r.msg.HeaderLine("Content-Type"))
}

// MediaType returns the lowercased Content-Type media type without
// parameters, or an empty string.
func (r *Request) MediaType() string { return r.mediaType().Type }

// MediaTypeParams returns the Content-Type parameters with lowercased keys.
func (r *Request) MediaTypeParams() map[string]string { return r.mediaType().Params }

// ContentType returns the raw Content-Type header.
func (r *Request) ContentType() string { return r.msg.HeaderLine("Content-Type") }

// ContentCharset returns the Content-Type charset parameter, or an empty
// string.
func (r *Request) ContentCharset() string { return r.mediaType().Charset() }

// ContentLength returns the Content-Length header as a number.
func (r *Request) ContentLength() (int64, bool) {
	v := r.msg.HeaderLine("Content-Length")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// QueryParams returns the materialized query parameters, or the ones decoded
// from the URI query string when none were materialized.
func (r *Request) QueryParams() map[string]any {
	if q := r.msg.QueryParams(); len(q) > 0 {
		return q
	}
	u := r.msg.URI()
	if u == nil {
		return map[string]any{}
	}
	return qs.Parse(u.RawQuery, r.qsOpts...)
}

// QueryParam returns the query parameter key, or def when it is absent or nil.
func (r *Request) QueryParam(key string, def any) any {
	if v, ok := r.QueryParams()[key]; ok && v != nil {
		return v
	}
	return def
}

// Param looks key up in the parsed body, then in the query parameters, and
// returns def when neither has it.
func (r *Request) Param(key string, def any) (any, error) {
	body, err := r.ParsedBody()
	if err != nil {
		return nil, err
	}
	if v, ok := bodyparser.Lookup(body, key); ok {
		return v, nil
	}
	return r.QueryParam(key, def), nil
}

// Params returns the query parameters with the entries of a non-empty parsed
// body merged over them. Lists merge by index.
func (r *Request) Params() (map[string]any, error) {
	body, err := r.ParsedBody()
	if err != nil {
		return nil, err
	}
	params := maps.Clone(r.QueryParams())
	if params == nil {
		params = make(map[string]any)
	}
	if !bodyparser.IsEmpty(body) {
		maps.Copy(params, bodyparser.ToMap(body))
	}
	return params, nil
}

// ParsedBodyParam looks key up in the parsed body only.
func (r *Request) ParsedBodyParam(key string, def any) (any, error) {
	body, err := r.ParsedBody()
	if err != nil {
		return nil, err
	}
	if v, ok := bodyparser.Lookup(body, key); ok {
		return v, nil
	}
	return def, nil
}

// CookieParam returns the cookie key, or def.
func (r *Request) CookieParam(key, def string) string {
	if v, ok := r.msg.CookieParams()[key]; ok {
		return v
	}
	return def
}

// ServerParam returns the server parameter key, or def when it is absent or
// nil.
func (r *Request) ServerParam(key string, def any) any {
	if v, ok := r.msg.ServerParams()[key]; ok && v != nil {
		return v
	}
	return def
}

// RouteParam returns a URL parameter captured by the chi router.
func (r *Request) RouteParam(key string) string {
	return chi.URLParamFromCtx(r.Context(), key)
}

// IsMethod reports whether the method equals method exactly.
func (r *Request) IsMethod(method string) bool { return r.msg.Method() == method }

// IsGet reports whether the method is GET.
func (r *Request) IsGet() bool { return r.IsMethod(http.MethodGet) }

// IsPost reports whether the method is POST.
func (r *Request) IsPost() bool { return r.IsMethod(http.MethodPost) }

// IsPut reports whether the method is PUT.
func (r *Request) IsPut() bool { return r.IsMethod(http.MethodPut) }

// IsPatch reports whether the method is PATCH.
func (r *Request) IsPatch() bool { return r.IsMethod(http.MethodPatch) }

// IsDelete reports whether the method is DELETE.
func (r *Request) IsDelete() bool { return r.IsMethod(http.MethodDelete) }

// IsHead reports whether the method is HEAD.
func (r *Request) IsHead() bool { return r.IsMethod(http.MethodHead) }

// IsOptions reports whether the method is OPTIONS.
func (r *Request) IsOptions() bool { return r.IsMethod(http.MethodOptions) }

// IsXhr reports whether X-Requested-With is exactly "XMLHttpRequest".
func (r *Request) IsXhr() bool {
	return r.msg.HeaderLine("X-Requested-With") == "XMLHttpRequest"
}

// Message returns the wrapped message.
func (r *Request) Message() message.ServerRequest { return r.msg }

// Method returns the HTTP method.
func (r *Request) Method() string { return r.msg.Method() }

// RequestTarget returns the request target as sent by the client.
func (r *Request) RequestTarget() string { return r.msg.RequestTarget() }

// ProtocolVersion returns the HTTP version without the "HTTP/" prefix.
func (r *Request) ProtocolVersion() string { return r.msg.ProtocolVersion() }

// URI returns a copy of the request URL.
func (r *Request) URI() *url.URL { return r.msg.URI() }

// Header returns the values of the named header.
func (r *Request) Header(name string) []string { return r.msg.Header(name) }

// HeaderLine returns the values of the named header joined by commas.
func (r *Request) HeaderLine(name string) string { return r.msg.HeaderLine(name) }

// HasHeader reports whether the named header is present.
func (r *Request) HasHeader(name string) bool { return r.msg.HasHeader(name) }

// Headers returns a copy of all headers.
func (r *Request) Headers() http.Header { return r.msg.Headers() }

// Body returns the raw body bytes.
func (r *Request) Body() []byte { return r.msg.Body() }

// CookieParams returns the request cookies by name.
func (r *Request) CookieParams() map[string]string { return r.msg.CookieParams() }

// ServerParams returns the server environment values.
func (r *Request) ServerParams() map[string]any { return r.msg.ServerParams() }

// Attributes returns the attribute bag.
func (r *Request) Attributes() map[string]any { return r.msg.Attributes() }

// Context returns the request context.
func (r *Request) Context() context.Context { return r.msg.Context() }

// UploadedFiles returns the uploaded files keyed by form field.
func (r *Request) UploadedFiles() map[string][]*message.UploadedFile {
	return r.msg.UploadedFiles()
}

// Attribute returns the named attribute, or def when it is not set.
func (r *Request) Attribute(name string, def any) any { return r.msg.Attribute(name, def) }

// Cleanup removes temporary files of multipart uploads, if the message
// holds any.
func (r *Request) Cleanup() error {
	if c, ok := r.msg.(interface{ Cleanup() error }); ok {
		return c.Cleanup()
	}
	return nil
}
