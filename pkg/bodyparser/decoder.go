package bodyparser

// Decoder decodes a raw request body.
// It returns nil, nil when the body cannot be decoded.
type Decoder interface {
	Decode(raw []byte) (any, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(raw []byte) (any, error)

// Decode calls f(raw).
func (f DecoderFunc) Decode(raw []byte) (any, error) {
	return f(raw)
}

// CharsetAware is implemented by decoders that handle the body's character
// encoding themselves. Callers pass such decoders the untranscoded body.
type CharsetAware interface {
	HandlesCharset() bool
}

// HandlesCharset reports whether d decodes character encodings on its own.
func HandlesCharset(d Decoder) bool {
	ca, ok := d.(CharsetAware)
	return ok && ca.HandlesCharset()
}
