package bodyparser

import "github.com/dmitrymomot/reqkit/pkg/qs"

// Form returns the application/x-www-form-urlencoded decoder.
// It always yields a map, empty for an empty body.
func Form(opts ...Option) Decoder {
	o := newOptions(opts)
	qsOpts := []qs.Option{qs.WithMaxDepth(o.formMaxDepth), qs.WithMaxVars(o.formMaxVars)}

	return DecoderFunc(func(raw []byte) (any, error) {
		return qs.Parse(string(raw), qsOpts...), nil
	})
}
