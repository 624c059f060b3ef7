package reqkit

import (
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqkit/pkg/binder"
	"github.com/dmitrymomot/reqkit/pkg/bodyparser"
)

// Bind fills dst from the merged parameters (see Params) and any uploaded
// files. Fields use the "param", "form" or "query" tag, files the "file" tag.
func (r *Request) Bind(dst any) error {
	params, err := r.Params()
	if err != nil {
		return err
	}
	if err := binder.Params(dst, params); err != nil {
		return err
	}
	return r.bindFiles(dst)
}

// BindQuery fills dst from the query parameters using the "query" tag.
func (r *Request) BindQuery(dst any) error {
	return binder.Query(dst, r.QueryParams())
}

// BindBody fills dst from the parsed body using the "form" or "json" tag,
// then binds uploaded files.
func (r *Request) BindBody(dst any) error {
	body, err := r.ParsedBody()
	if err != nil {
		return err
	}
	if err := binder.Body(dst, bodyparser.ToMap(body)); err != nil {
		return err
	}
	return r.bindFiles(dst)
}

// BindPath fills dst from chi route parameters using the "path" tag.
func (r *Request) BindPath(dst any) error {
	params := make(map[string]string)
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if i < len(rctx.URLParams.Values) {
				params[key] = rctx.URLParams.Values[i]
			}
		}
	}
	return binder.Path(dst, params)
}

// BindJSON strictly decodes the raw body as JSON into dst.
func (r *Request) BindJSON(dst any) error {
	return binder.JSON(dst, r.Body())
}

func (r *Request) bindFiles(dst any) error {
	files := r.UploadedFiles()
	if len(files) == 0 {
		return nil
	}
	return binder.Files(dst, files)
}
