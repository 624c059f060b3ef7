package bodyparser

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ToUTF8 converts raw from the named charset to UTF-8.
// Empty, unknown and UTF-8 labels return raw unchanged.
func ToUTF8(raw []byte, label string) ([]byte, error) {
	label = strings.Trim(strings.TrimSpace(label), `"'`)
	if label == "" || len(raw) == 0 {
		return raw, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil || enc == unicode.UTF8 {
		return raw, nil
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCharset, label, err)
	}
	return out, nil
}
