// Package requestid attaches correlation identifiers to HTTP requests.
//
// A request ID is a short opaque string that identifies one incoming request.
// Carrying it through headers, context and structured logs ties together all
// log records produced while serving that request.
//
// Ensure resolves the ID for a request: a client-supplied "X-Request-ID"
// header is reused when it is valid, otherwise a new UUIDv4 is generated.
// The resolved ID is stored in the request context. Middleware does the same
// and echoes the ID back in the response header.
//
//	http.ListenAndServe(":8080", requestid.Middleware(mux))
//
// LoggerExtractor plugs the ID into the logger package so every record logged
// with a request context carries a "request_id" attribute:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Invalid or empty IDs supplied by a client are silently replaced.
package requestid
