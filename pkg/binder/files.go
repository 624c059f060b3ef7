package binder

import (
	"fmt"
	"mime/multipart"
	"reflect"

	"github.com/dmitrymomot/reqkit/pkg/message"
)

var (
	uploadedFileType  = reflect.TypeFor[*message.UploadedFile]()
	fileHeaderType    = reflect.TypeFor[*multipart.FileHeader]()
	uploadedFilesType = reflect.TypeFor[[]*message.UploadedFile]()
	fileHeadersType   = reflect.TypeFor[[]*multipart.FileHeader]()
)

// Files binds uploaded files to fields tagged with `file:"name"`.
// Untagged fields are left alone.
func Files(v any, files map[string][]*message.UploadedFile) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", ErrFailedToBindFiles, ErrInvalidTarget)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name := fieldType.Tag.Get("file")
		if name == "" || name == "-" {
			continue
		}
		uploaded := files[name]
		if len(uploaded) == 0 {
			continue
		}

		if err := setFileField(field, fieldType.Type, uploaded); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrFailedToBindFiles, fieldType.Name, err)
		}
	}

	return nil
}

func setFileField(field reflect.Value, fieldType reflect.Type, files []*message.UploadedFile) error {
	switch fieldType {
	case uploadedFileType:
		field.Set(reflect.ValueOf(files[0]))
	case fileHeaderType:
		field.Set(reflect.ValueOf(files[0].FileHeader()))
	case uploadedFilesType:
		field.Set(reflect.ValueOf(files))
	case fileHeadersType:
		headers := make([]*multipart.FileHeader, len(files))
		for i, f := range files {
			headers[i] = f.FileHeader()
		}
		field.Set(reflect.ValueOf(headers))
	default:
		return fmt.Errorf("unsupported type for file field: %v", fieldType)
	}
	return nil
}
