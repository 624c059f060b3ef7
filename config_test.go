package reqkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit"
	"github.com/dmitrymomot/reqkit/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	t.Setenv("REQUEST_MAX_BODY_BYTES", "2048")
	t.Setenv("REQUEST_JSON_USE_NUMBER", "true")
	t.Setenv("REQUEST_FORM_MAX_DEPTH", "8")
	t.Setenv("REQUEST_DISABLE_CHARSET_TRANSCODING", "true")

	cfg, err := reqkit.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, reqkit.Config{
		MaxBodyBytes:              2048,
		MaxMultipartMemory:        32 << 20,
		JSONUseNumber:             true,
		FormMaxDepth:              8,
		FormMaxVars:               1000,
		DisableCharsetTranscoding: true,
	}, cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	t.Setenv("REQUEST_FORM_MAX_VARS", "many")

	_, err := reqkit.LoadConfig()
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestDefaultConfigMatchesEnvDefaults(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	cfg, err := reqkit.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, reqkit.DefaultConfig(), cfg)
}
