package reqkit

import (
	"github.com/dmitrymomot/reqkit/pkg/config"
	"github.com/dmitrymomot/reqkit/pkg/message"
	"github.com/dmitrymomot/reqkit/pkg/qs"
)

// Config holds request decoding limits. A zero field means the default,
// so a partially filled Config is safe to pass to WithConfig.
type Config struct {
	// MaxBodyBytes caps how much of a body FromHTTP buffers (default: 10 MiB).
	MaxBodyBytes int64 `env:"REQUEST_MAX_BODY_BYTES" envDefault:"10485760"`

	// MaxMultipartMemory is kept in memory before uploads spill to disk (default: 32 MiB).
	MaxMultipartMemory int64 `env:"REQUEST_MAX_MULTIPART_MEMORY" envDefault:"33554432"`

	// JSONUseNumber decodes JSON numbers as json.Number.
	JSONUseNumber bool `env:"REQUEST_JSON_USE_NUMBER" envDefault:"false"`

	// FormMaxDepth limits bracket nesting in forms and query strings (default: 64).
	FormMaxDepth int `env:"REQUEST_FORM_MAX_DEPTH" envDefault:"64"`

	// FormMaxVars limits pairs decoded from forms and query strings (default: 1000).
	FormMaxVars int `env:"REQUEST_FORM_MAX_VARS" envDefault:"1000"`

	// DisableCharsetTranscoding hands non-UTF-8 bodies to decoders unchanged.
	DisableCharsetTranscoding bool `env:"REQUEST_DISABLE_CHARSET_TRANSCODING" envDefault:"false"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:       message.DefaultMaxBodyBytes,
		MaxMultipartMemory: message.DefaultMaxMultipartMemory,
		FormMaxDepth:       qs.DefaultMaxDepth,
		FormMaxVars:        qs.DefaultMaxVars,
	}
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
