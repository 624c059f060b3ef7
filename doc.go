// Package reqkit decorates server requests with content-negotiated body
// decoding, merged parameter lookup and method predicates.
//
// A Request wraps a message.ServerRequest and decodes its body on demand from
// the Content-Type header. JSON, XML and URL-encoded forms are supported out
// of the box; any other media type can be registered:
//
//	req, err := reqkit.FromHTTP(r)
//	if err != nil {
//		return err
//	}
//	req.RegisterMediaTypeParser("application/yaml", bodyparser.YAML())
//
//	name, err := req.Param("name", "anonymous") // body first, then query
//
// Media types with a structured syntax suffix fall back once to the generic
// decoder: application/vnd.api+json is decoded as application/json and
// application/atom+xml as application/xml. Unsupported media types and
// malformed bodies decode to nil. A decoder that returns something other than
// nil, a map[string]any, a []any or a bodyparser.Record is a programming error
// reported as ErrInvalidParsedBody.
//
// Every With* method returns a new Request with its own copy of the decoder
// registry. RegisterMediaTypeParser is the one in-place mutation. The parsed
// body is never cached: each call decodes the current headers and body again.
//
// Within an HTTP stack, Middleware wraps every request and FromContext
// retrieves it:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware, reqkit.Middleware(reqkit.WithConfig(cfg)))
//	r.Post("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
//		req, _ := reqkit.FromContext(r.Context())
//		var in UpdateUser
//		if err := req.Bind(&in); err != nil {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		id := req.RouteParam("id")
//		// ...
//	})
//
// Configuration comes from the environment through LoadConfig; see Config for
// the variables.
package reqkit
