package reqkit

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/message"
)

type contextKey struct{}

// Middleware wraps every request with FromHTTP and stores the result in the
// request context for FromContext. Bodies over the configured limit are
// answered with 413, other wrapping failures with 400. Temporary upload
// files are removed once the handler returns.
//
// The request context is given the method and path as log attributes, so
// records logged through a decorated logger carry them.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	log := newOptions(opts).componentLogger()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(logger.ContextWithAttrs(r.Context(),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
			))

			req, err := FromHTTP(r, opts...)
			if err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, message.ErrBodyTooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				log.WarnContext(r.Context(), "failed to read request", logger.Error(err))
				http.Error(w, http.StatusText(status), status)
				return
			}
			defer func() {
				if err := req.Cleanup(); err != nil {
					log.WarnContext(r.Context(), "failed to remove uploaded files", logger.Error(err))
				}
			}()

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), req)))
		})
	}
}

// NewContext returns a copy of ctx carrying req.
func NewContext(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, contextKey{}, req)
}

// FromContext returns the Request stored by Middleware or NewContext.
func FromContext(ctx context.Context) (*Request, bool) {
	if ctx == nil {
		return nil, false
	}
	req, ok := ctx.Value(contextKey{}).(*Request)
	return req, ok && req != nil
}
