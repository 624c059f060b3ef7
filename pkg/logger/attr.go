package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". All-nil input yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// MediaType records a request media type under "media_type".
// An empty media type yields an empty Attr.
func MediaType(mt string) slog.Attr {
	if mt == "" {
		return slog.Attr{}
	}
	return slog.String("media_type", mt)
}

// Method records the HTTP method under "method".
func Method(m string) slog.Attr {
	return slog.String("method", m)
}

// Path records the request path under "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// BodySize records a body length in bytes under "body_size".
func BodySize(n int) slog.Attr {
	return slog.Int("body_size", n)
}
