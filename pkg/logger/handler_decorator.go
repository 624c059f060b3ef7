package logger

import (
	"context"
	"log/slog"
	"slices"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type attrsKey struct{}

// ContextWithAttrs returns a copy of ctx carrying attrs after any attributes
// it already holds. Decorated handlers add them to every record logged with
// the returned context.
func ContextWithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	prev := AttrsFromContext(ctx)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(append(merged, prev...), attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// AttrsFromContext returns the attributes stored by ContextWithAttrs.
func AttrsFromContext(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

// LogHandlerDecorator wraps a slog.Handler and adds request-scoped
// attributes: those stored by ContextWithAttrs, then those returned by its
// extractors.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewLogHandlerDecorator creates a decorated handler. Nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) *LogHandlerDecorator {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, extractors: clean}
}

// Decorate returns a logger writing through l's handler with extractors
// added. An already decorated handler is extended rather than wrapped again.
// A nil l decorates slog.Default().
func Decorate(l *slog.Logger, extractors ...ContextExtractor) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if d, ok := l.Handler().(*LogHandlerDecorator); ok {
		return slog.New(NewLogHandlerDecorator(d.next, append(slices.Clone(d.extractors), extractors...)...))
	}
	return slog.New(NewLogHandlerDecorator(l.Handler(), extractors...))
}

// Enabled reports whether the wrapped handler handles level.
func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds the context attributes and runs the extractors on every call
// so request-scoped values are never stale.
func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	attrs := AttrsFromContext(ctx)
	if len(attrs) == 0 && len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}
	rec = rec.Clone()
	rec.AddAttrs(attrs...)
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

// WithAttrs keeps the decoration around the handler with attrs.
func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandlerDecorator{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

// WithGroup keeps the decoration around the grouped handler.
func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return &LogHandlerDecorator{next: h.next.WithGroup(name), extractors: h.extractors}
}
