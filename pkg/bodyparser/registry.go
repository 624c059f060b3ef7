package bodyparser

import (
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/reqkit/pkg/mediatype"
)

// Media types served by Defaults.
const (
	MediaTypeJSON    = "application/json"
	MediaTypeXML     = "application/xml"
	MediaTypeTextXML = "text/xml"
	MediaTypeForm    = "application/x-www-form-urlencoded"
	MediaTypeYAML    = "application/yaml"
)

// Registry maps media types to decoders.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Defaults returns a registry seeded with the JSON, XML and form decoders.
func Defaults(opts ...Option) *Registry {
	xml := XML(opts...)
	return NewRegistry().
		Register(MediaTypeJSON, JSON(opts...)).
		Register(MediaTypeXML, xml).
		Register(MediaTypeTextXML, xml).
		Register(MediaTypeForm, Form(opts...))
}

// Register stores d for mediaType, replacing any previous decoder.
// The key is normalized to the lowercase media type without parameters.
// A nil decoder removes the entry. Register returns r for chaining.
func (r *Registry) Register(mediaType string, d Decoder) *Registry {
	key := normalize(mediaType)
	if key == "" {
		return r
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d == nil {
		delete(r.decoders, key)
		return r
	}
	r.decoders[key] = d
	return r
}

// Lookup resolves the decoder for mediaType. When no decoder is registered
// for the exact type and the type has a structured-syntax suffix, Lookup
// retries once with "application/<suffix>". It returns the decoder and the
// key it was registered under.
func (r *Registry) Lookup(mediaType string) (Decoder, string, bool) {
	mt := mediatype.Parse(mediaType)
	if mt.IsZero() {
		return nil, "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.decoders[mt.Type]; ok {
		return d, mt.Type, true
	}

	fallback, ok := mt.SuffixFallback()
	if !ok {
		return nil, "", false
	}
	if d, ok := r.decoders[fallback]; ok {
		return d, fallback, true
	}
	return nil, "", false
}

// Has reports whether a decoder is registered for the exact media type.
func (r *Registry) Has(mediaType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.decoders[normalize(mediaType)]
	return ok
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{decoders: maps.Clone(r.decoders)}
}

// MediaTypes returns the registered media types in sorted order.
func (r *Registry) MediaTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.decoders))
}

func normalize(mediaType string) string {
	return mediatype.Parse(mediaType).Type
}
