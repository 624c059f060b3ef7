package message

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/reqkit/pkg/mediatype"
	"github.com/dmitrymomot/reqkit/pkg/qs"
)

const mediaTypeMultipart = "multipart/form-data"

// FromHTTP builds a Request from r. The body is buffered up to the configured
// limit and r.Body is replaced by a reader over the buffered bytes so later
// handlers can read it again. A larger body yields ErrBodyTooLarge.
func FromHTTP(r *http.Request, opts ...Option) (*Request, error) {
	o := newOptions(opts)

	body, err := readBody(r, o.maxBodyBytes)
	if err != nil {
		return nil, err
	}

	headers := r.Header.Clone()
	if headers == nil {
		headers = make(http.Header)
	}
	if r.Host != "" && headers.Get("Host") == "" {
		headers.Set("Host", r.Host)
	}

	ctx := r.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rawQuery := ""
	if r.URL != nil {
		rawQuery = r.URL.RawQuery
	}

	msg := &Request{
		method:   r.Method,
		target:   r.RequestURI,
		uri:      requestURL(r),
		protocol: protocolVersion(r),
		headers:  headers,
		body:     body,
		query:    qs.Parse(rawQuery, o.queryOpts...),
		cookies:  cookieParams(r),
		server:   serverParams(r, o.now()),
		files:    map[string][]*UploadedFile{},
		attrs:    orEmpty(o.attrs),
		ctx:      ctx,
	}
	maps.Copy(msg.server, o.serverParams)
	if msg.method == "" {
		msg.method = http.MethodGet
	}

	mt := mediatype.Parse(headers.Get("Content-Type"))
	if mt.Type == mediaTypeMultipart {
		if err := msg.parseMultipart(mt, o.maxMultipartMemory, o.queryOpts); err != nil {
			return nil, err
		}
	}

	return msg, nil
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if r.ContentLength > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d bytes limit", ErrBodyTooLarge, r.ContentLength, limit)
	}
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: %v", ErrBodyTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadBody, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes limit", ErrBodyTooLarge, limit)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func (r *Request) parseMultipart(mt mediatype.MediaType, maxMemory int64, queryOpts []qs.Option) error {
	boundary := strings.Trim(mt.Params["boundary"], `"`)
	if boundary == "" {
		return fmt.Errorf("%w: missing boundary", ErrMultipartForm)
	}
	form, err := multipart.NewReader(bytes.NewReader(r.body), boundary).ReadForm(maxMemory)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMultipartForm, err)
	}
	r.form = form

	values := url.Values(form.Value)
	r.parsedBody = qs.Parse(values.Encode(), queryOpts...)

	for field, headers := range form.File {
		for _, fh := range headers {
			r.files[field] = append(r.files[field], NewUploadedFile(fh))
		}
	}
	return nil
}

func requestURL(r *http.Request) *url.URL {
	u := &url.URL{}
	if r.URL != nil {
		cp := *r.URL
		u = &cp
	}
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}
	return u
}

func protocolVersion(r *http.Request) string {
	switch {
	case r.ProtoMajor == 0:
		return DefaultProtocolVersion
	case r.ProtoMajor >= 2 && r.ProtoMinor == 0:
		return strconv.Itoa(r.ProtoMajor)
	default:
		return strconv.Itoa(r.ProtoMajor) + "." + strconv.Itoa(r.ProtoMinor)
	}
}

// cookieParams keeps the first value of repeated cookie names.
func cookieParams(r *http.Request) map[string]string {
	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		if _, ok := cookies[c.Name]; !ok {
			cookies[c.Name] = c.Value
		}
	}
	return cookies
}
