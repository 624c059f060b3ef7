package reqkit

import (
	"log/slog"

	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
	"github.com/dmitrymomot/reqkit/pkg/logger"
	"github.com/dmitrymomot/reqkit/pkg/qs"
	"github.com/dmitrymomot/reqkit/pkg/requestid"
)

// Option configures a Request.
type Option func(*options)

type options struct {
	cfg      Config
	logger   *slog.Logger
	registry *bodyparser.Registry
	decoders []registration
}

type registration struct {
	mediaType string
	decoder   bodyparser.Decoder
}

func newOptions(opts []Option) options {
	o := options{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) bodyparserOptions() []bodyparser.Option {
	return []bodyparser.Option{
		bodyparser.WithJSONUseNumber(o.cfg.JSONUseNumber),
		bodyparser.WithFormMaxDepth(o.cfg.FormMaxDepth),
		bodyparser.WithFormMaxVars(o.cfg.FormMaxVars),
		bodyparser.WithLogger(o.logger),
	}
}

// componentLogger tags records with the component and adds the request ID
// and the attributes Middleware stores in the request context.
func (o options) componentLogger() *slog.Logger {
	return logger.Decorate(o.logger.With(logger.Component("reqkit")), requestid.LoggerExtractor())
}

func (o options) queryOptions() []qs.Option {
	return []qs.Option{
		qs.WithMaxDepth(o.cfg.FormMaxDepth),
		qs.WithMaxVars(o.cfg.FormMaxVars),
	}
}

// newRegistry returns a clone of the configured registry, or the defaults,
// with extra decoders registered on top.
func (o options) newRegistry() *bodyparser.Registry {
	var reg *bodyparser.Registry
	if o.registry != nil {
		reg = o.registry.Clone()
	} else {
		reg = bodyparser.Defaults(o.bodyparserOptions()...)
	}
	for _, d := range o.decoders {
		reg.Register(d.mediaType, d.decoder)
	}
	return reg
}

// WithLogger sets the logger for decode diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConfig applies cfg. Zero or negative limits keep their defaults and
// the flags are taken as given; the zero flags match DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		if cfg.MaxBodyBytes > 0 {
			o.cfg.MaxBodyBytes = cfg.MaxBodyBytes
		}
		if cfg.MaxMultipartMemory > 0 {
			o.cfg.MaxMultipartMemory = cfg.MaxMultipartMemory
		}
		if cfg.FormMaxDepth > 0 {
			o.cfg.FormMaxDepth = cfg.FormMaxDepth
		}
		if cfg.FormMaxVars > 0 {
			o.cfg.FormMaxVars = cfg.FormMaxVars
		}
		o.cfg.JSONUseNumber = cfg.JSONUseNumber
		o.cfg.DisableCharsetTranscoding = cfg.DisableCharsetTranscoding
	}
}

// WithRegistry starts from a copy of reg instead of the default decoders.
func WithRegistry(reg *bodyparser.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithDecoder registers d for mediaType on every Request built with the
// option. A nil decoder removes the media type.
func WithDecoder(mediaType string, d bodyparser.Decoder) Option {
	return func(o *options) {
		o.decoders = append(o.decoders, registration{mediaType: mediaType, decoder: d})
	}
}
