package message_test

import (
	"bytes"
	"crypto/tls"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/message"
	"github.com/dmitrymomot/reqkit/pkg/qs"
	"github.com/dmitrymomot/reqkit/pkg/requestid"
)

func TestFromHTTP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/items?filter[status]=open&page=3", strings.NewReader(`{"a":1}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	r.Header.Set("X-Requested-With", "XMLHttpRequest")
	r.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	r.AddCookie(&http.Cookie{Name: "session", Value: "ignored"})

	msg, err := message.FromHTTP(r)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, msg.Method())
	assert.Equal(t, "/items?filter[status]=open&page=3", msg.RequestTarget())
	assert.Equal(t, "1.1", msg.ProtocolVersion())
	assert.Equal(t, "http", msg.URI().Scheme)
	assert.Equal(t, "example.com", msg.URI().Host)
	assert.Equal(t, "example.com", msg.HeaderLine("Host"))
	assert.Equal(t, `{"a":1}`, string(msg.Body()))
	assert.Equal(t, map[string]any{
		"filter": map[string]any{"status": "open"},
		"page":   "3",
	}, msg.QueryParams())
	assert.Equal(t, map[string]string{"session": "abc"}, msg.CookieParams())
	assert.Nil(t, msg.ParsedBody())
	assert.Same(t, r.Context(), msg.Context())

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(rest), "body is readable again after buffering")
}

func TestFromHTTPBodyLimit(t *testing.T) {
	t.Parallel()

	t.Run("declared length", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
		_, err := message.FromHTTP(r, message.WithMaxBodyBytes(5))
		assert.ErrorIs(t, err, message.ErrBodyTooLarge)
	})

	t.Run("unknown length", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("0123456789")))
		r.ContentLength = -1
		_, err := message.FromHTTP(r, message.WithMaxBodyBytes(5))
		assert.ErrorIs(t, err, message.ErrBodyTooLarge)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("01234"))
		msg, err := message.FromHTTP(r, message.WithMaxBodyBytes(5))
		require.NoError(t, err)
		assert.Equal(t, "01234", string(msg.Body()))
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		msg, err := message.FromHTTP(r)
		require.NoError(t, err)
		assert.Empty(t, msg.Body())
	})
}

func TestFromHTTPQueryOptions(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?a=1&b=2&c=3", nil)
	msg, err := message.FromHTTP(r, message.WithQueryOptions(qs.WithMaxVars(2)))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "b": "2"}, msg.QueryParams())

	built, err := message.New(http.MethodGet, "/?a=1&b=2&c=3", message.WithQueryOptions(qs.WithMaxVars(1)))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1"}, built.QueryParams())
}

func TestFromHTTPServerParams(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 500_000_000)
	r := httptest.NewRequest(http.MethodPut, "https://api.example.com:8443/v1/things?x=1", strings.NewReader("k=v"))
	r.TLS = &tls.ConnectionState{}
	r.RemoteAddr = "198.51.100.4:5555"
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	r.Header.Set("Accept-Language", "en")
	r = r.WithContext(requestid.WithContext(r.Context(), "req-42"))

	msg, err := message.FromHTTP(r,
		message.WithClock(func() time.Time { return now }),
		message.WithServerParams(map[string]any{"APP_ENV": "test"}),
	)
	require.NoError(t, err)

	params := msg.ServerParams()
	assert.Equal(t, http.MethodPut, params["REQUEST_METHOD"])
	assert.Equal(t, "x=1", params["QUERY_STRING"])
	assert.Equal(t, "HTTP/1.1", params["SERVER_PROTOCOL"])
	assert.Equal(t, "api.example.com", params["SERVER_NAME"])
	assert.Equal(t, "8443", params["SERVER_PORT"])
	assert.Equal(t, "on", params["HTTPS"])
	assert.Equal(t, "198.51.100.4", params["REMOTE_ADDR"])
	assert.Equal(t, "5555", params["REMOTE_PORT"])
	assert.Equal(t, "application/x-www-form-urlencoded", params["CONTENT_TYPE"])
	assert.Equal(t, "3", params["CONTENT_LENGTH"])
	assert.Equal(t, "en", params["HTTP_ACCEPT_LANGUAGE"])
	assert.Equal(t, "api.example.com:8443", params["HTTP_HOST"])
	assert.NotContains(t, params, "HTTP_CONTENT_TYPE")
	assert.Equal(t, "203.0.113.7", params["CLIENT_IP"])
	assert.Equal(t, "req-42", params["REQUEST_ID"])
	assert.Equal(t, int64(1700000000), params["REQUEST_TIME"])
	assert.InDelta(t, 1700000000.5, params["REQUEST_TIME_FLOAT"], 0.001)
	assert.Equal(t, "test", params["APP_ENV"])
	assert.Equal(t, "https", msg.URI().Scheme)
}

func TestFromHTTPProtocolVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		major, minor int
		want         string
	}{
		{1, 0, "1.0"},
		{1, 1, "1.1"},
		{2, 0, "2"},
		{3, 0, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.ProtoMajor, r.ProtoMinor = tt.major, tt.minor
			msg, err := message.FromHTTP(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg.ProtocolVersion())
		})
	}
}

func multipartRequest(t *testing.T) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Report"))
	require.NoError(t, mw.WriteField("tags[]", "a"))
	require.NoError(t, mw.WriteField("tags[]", "b"))
	require.NoError(t, mw.WriteField("meta[owner]", "alice"))
	fw, err := mw.CreateFormFile("attachment", "report.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestFromHTTPMultipart(t *testing.T) {
	t.Parallel()

	msg, err := message.FromHTTP(multipartRequest(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = msg.Cleanup() })

	assert.Equal(t, map[string]any{
		"title": "Report",
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"owner": "alice"},
	}, msg.ParsedBody())

	files := msg.UploadedFiles()["attachment"]
	require.Len(t, files, 1)
	f := files[0]
	assert.Equal(t, "report.pdf", f.ClientFilename())
	assert.Equal(t, ".pdf", f.Extension())
	assert.Equal(t, "application/octet-stream", f.ClientMediaType())
	assert.Equal(t, int64(len("%PDF-1.4 fake")), f.Size())

	data, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	mt, err := f.DetectMediaType()
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mt)

	sum, err := f.Hash(nil)
	require.NoError(t, err)
	assert.Len(t, sum, 64)
}

func TestFromHTTPMultipartErrors(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("garbage"))
	r.Header.Set("Content-Type", "multipart/form-data")
	_, err := message.FromHTTP(r)
	assert.ErrorIs(t, err, message.ErrMultipartForm)
}

func TestUploadedFileNilHeader(t *testing.T) {
	t.Parallel()

	f := message.NewUploadedFile(nil)
	assert.Empty(t, f.ClientFilename())
	assert.Empty(t, f.ClientMediaType())
	assert.Zero(t, f.Size())

	_, err := f.Open()
	assert.ErrorIs(t, err, message.ErrNilFileHeader)
	_, err = f.ReadAll()
	assert.ErrorIs(t, err, message.ErrNilFileHeader)
	_, err = f.Hash(nil)
	assert.ErrorIs(t, err, message.ErrNilFileHeader)
}

func TestUploadedFileSafeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"report.pdf":            "report.pdf",
		"../../etc/passwd":      "passwd",
		`C:\Users\me\photo.png`: "photo.png",
		"bad\x00name.txt":       "badname.txt",
		"":                      "unnamed",
		"..":                    "unnamed",
		"/":                     "unnamed",
	}
	for in, want := range tests {
		f := message.NewUploadedFile(&multipart.FileHeader{Filename: in})
		assert.Equal(t, want, f.SafeFilename(), in)
	}
}
