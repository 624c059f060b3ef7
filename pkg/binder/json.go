package binder

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/bytedance/sonic"
)

// strictJSON rejects unknown fields.
var strictJSON = sonic.Config{
	EscapeHTML:            true,
	SortMapKeys:           true,
	CompactMarshaler:      true,
	CopyString:            true,
	ValidateString:        true,
	DisallowUnknownFields: true,
}.Froze()

// JSON strictly decodes raw into the struct pointed to by v. Unknown fields,
// empty bodies and trailing data are errors.
func JSON(v any, raw []byte) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %w", ErrFailedToParseJSON, ErrInvalidTarget)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}
	if err := strictJSON.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	return nil
}
