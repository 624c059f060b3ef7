package bodyparser

import (
	"log/slog"

	"github.com/dmitrymomot/reqkit/pkg/qs"
)

// Option configures the default decoders.
type Option func(*options)

type options struct {
	jsonUseNumber bool
	formMaxDepth  int
	formMaxVars   int
	logger        *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		formMaxDepth: qs.DefaultMaxDepth,
		formMaxVars:  qs.DefaultMaxVars,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithJSONUseNumber decodes JSON numbers as json.Number instead of float64.
func WithJSONUseNumber(use bool) Option {
	return func(o *options) { o.jsonUseNumber = use }
}

// WithFormMaxDepth limits bracket nesting in form bodies.
func WithFormMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.formMaxDepth = depth
		}
	}
}

// WithFormMaxVars limits the number of pairs decoded from a form body.
func WithFormMaxVars(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.formMaxVars = n
		}
	}
}

// WithLogger sets the logger used for decode diagnostics.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
