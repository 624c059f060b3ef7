// Package binder copies decoded request parameters into typed structs.
//
// Decoded parameters are the nested map[string]any values produced by the
// query-string, form, JSON, XML and YAML decoders. Binding walks the target
// struct and converts each value into the field's type:
//
//	type ListUsers struct {
//		Page    int      `query:"page"`
//		Tags    []string `query:"tags"`
//		Filter  struct {
//			Status string `query:"status"`
//		} `query:"filter"`
//		Cursor *string `query:"cursor"`
//		Secret string  `query:"-"`
//	}
//
//	var in ListUsers
//	err := binder.Query(&in, msg.QueryParams())
//
// Field names come from the first matching tag; untagged fields use their
// lowercased name. Nested maps bind into struct and map fields, lists and
// comma-separated strings bind into slices, and pointers mark optional
// fields. Anonymous struct fields are flattened.
//
// Uploaded files bind with the "file" tag into *message.UploadedFile,
// []*message.UploadedFile, *multipart.FileHeader or []*multipart.FileHeader
// fields. Raw JSON bodies bind strictly through JSON.
//
// All errors wrap one of the package sentinels so callers can use errors.Is.
package binder
