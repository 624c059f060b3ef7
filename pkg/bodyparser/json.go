package bodyparser

import (
	"bytes"

	"github.com/bytedance/sonic"
)

type jsonDecoder struct {
	api sonic.API
}

// JSON returns the application/json decoder.
// Only objects and arrays of objects decode; scalars, arrays holding scalars
// and malformed input yield nil.
func JSON(opts ...Option) Decoder {
	o := newOptions(opts)

	api := sonic.ConfigStd
	if o.jsonUseNumber {
		api = sonic.Config{
			EscapeHTML:       true,
			SortMapKeys:      true,
			CompactMarshaler: true,
			CopyString:       true,
			ValidateString:   true,
			UseNumber:        true,
		}.Froze()
	}

	return &jsonDecoder{api: api}
}

func (d *jsonDecoder) Decode(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var v any
	if err := d.api.Unmarshal(raw, &v); err != nil {
		return nil, nil
	}

	if !structured(v) {
		return nil, nil
	}
	return v, nil
}
