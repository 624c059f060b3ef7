package bodyparser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML returns a decoder for YAML bodies. Only mappings and sequences of
// mappings decode;
// mapping keys are converted to strings.
func YAML() Decoder {
	return DecoderFunc(func(raw []byte) (any, error) {
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}

		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, nil
		}

		n := normalizeYAML(v)
		if !structured(n) {
			return nil, nil
		}
		return n, nil
	})
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
