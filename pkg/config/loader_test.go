package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/config"
)

type defaultsConfig struct {
	Name    string `env:"TEST_CFG_NAME" envDefault:"default_value"`
	Limit   int64  `env:"TEST_CFG_LIMIT" envDefault:"42"`
	Enabled bool   `env:"TEST_CFG_ENABLED" envDefault:"true"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED" envDefault:"first"`
}

type requiredConfig struct {
	Required string `env:"TEST_CFG_REQUIRED,required"`
}

type prefixedConfig struct {
	Value string `env:"VALUE"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		config.ResetCache()
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "default_value", cfg.Name)
		assert.Equal(t, int64(42), cfg.Limit)
		assert.True(t, cfg.Enabled)
	})

	t.Run("reads environment", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CFG_LIMIT", "7")
		t.Setenv("TEST_CFG_ENABLED", "false")

		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, int64(7), cfg.Limit)
		assert.False(t, cfg.Enabled)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.ResetCache()
		var first cachedConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_CFG_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)

		config.ResetCache()
		var third cachedConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "second", third.Value)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.ResetCache()
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
		assert.ErrorIs(t, config.Parse[defaultsConfig](nil), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	config.ResetCache()
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

func TestParseWithOptions(t *testing.T) {
	t.Setenv("APP_VALUE", "prefixed")

	var cfg prefixedConfig
	require.NoError(t, config.Parse(&cfg, env.Options{Prefix: "APP_"}))
	assert.Equal(t, "prefixed", cfg.Value)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_FROM_FILE=from_file\n"), 0o600))

	t.Cleanup(func() { os.Unsetenv("TEST_CFG_FROM_FILE") })
	require.NoError(t, config.LoadEnv(path))
	assert.Equal(t, "from_file", os.Getenv("TEST_CFG_FROM_FILE"))

	err := config.LoadEnv(filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
