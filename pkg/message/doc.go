// Package message provides an immutable server-side HTTP request message.
//
// A Request holds everything a handler reads from an incoming request:
// method, request target, URI, protocol version, headers, the buffered body,
// query, cookie and server parameters, uploaded files, an optional
// pre-parsed body and a free-form attribute bag. Every With* method returns a
// modified copy and leaves the receiver untouched.
//
// Requests are usually built from a *http.Request:
//
//	msg, err := message.FromHTTP(r, message.WithMaxBodyBytes(1<<20))
//	if errors.Is(err, message.ErrBodyTooLarge) {
//		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
//		return
//	}
//
// or assembled directly, which is convenient in tests:
//
//	msg, err := message.New(http.MethodPost, "https://example.com/users?page=2",
//		message.WithHeaders(http.Header{"Content-Type": {"application/json"}}),
//		message.WithContent([]byte(`{"name":"alice"}`)),
//	)
//
// Header names and values are validated with golang.org/x/net/http/httpguts.
// Methods must be HTTP tokens, protocol versions one of 1.0, 1.1, 2, 2.0, 3
// or 3.0, and request targets must not contain whitespace. Parsed bodies must
// be nil, a map[string]any, a []any or a bodyparser.Record.
//
// For multipart/form-data requests FromHTTP decodes the form: values become
// the parsed body using bracket notation and files are exposed through
// UploadedFiles.
package message
