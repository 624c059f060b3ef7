// Package logger builds *slog.Logger instances for reqkit and the services
// embedding it.
//
// New creates a logger configured by Option functions: output format (json or
// text), minimum level, static attributes, and ContextExtractor callbacks that
// pull request-scoped values such as request IDs out of a context.Context on
// every record. Decorate adds the same behaviour to a logger built elsewhere.
//
// Attributes stored with ContextWithAttrs travel with the context and are
// added by every decorated handler, so a middleware can tag all records of
// one request:
//
//	log := logger.New(
//		logger.WithComponent("api"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	ctx = logger.ContextWithAttrs(ctx, logger.Method(r.Method), logger.Path(r.URL.Path))
//	log.WarnContext(ctx, "body rejected", logger.MediaType("application/json"), logger.Error(err))
//
// The attribute helpers in attr.go keep key names consistent. Helpers taking
// an error or an optional value return an empty slog.Attr for nil input, so
// they can be passed without a nil check.
package logger
