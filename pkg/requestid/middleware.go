package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// Middleware ensures every request carries an ID and echoes it in the
// response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, requestID := Ensure(r)
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r)
	})
}

// Ensure returns r with a request ID in its context. An ID already in the
// context is kept; otherwise the Header value is reused when valid, or a new
// one is generated.
func Ensure(r *http.Request) (*http.Request, string) {
	if id := FromContext(r.Context()); id != "" {
		return r, id
	}
	id := Resolve(r.Header.Get(Header))
	return r.WithContext(WithContext(r.Context(), id)), id
}

// Resolve returns candidate when it is a valid request ID, otherwise a new UUID.
func Resolve(candidate string) string {
	if IsValid(candidate) {
		return candidate
	}
	return uuid.New().String()
}

// IsValid reports whether id is non-empty, at most 128 characters and made of
// letters, digits, '-' and '_'.
func IsValid(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
