// Package config loads environment variables into typed configuration structs.
//
// Struct fields are mapped with caarlos0/env tags. A .env file in the working
// directory is loaded once, before the first Load, through joho/godotenv;
// variables already present in the process environment take precedence.
//
//	type RequestConfig struct {
//		MaxBodyBytes int64 `env:"REQUEST_MAX_BODY_BYTES" envDefault:"10485760"`
//	}
//
//	var cfg RequestConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Load caches the parsed value per type, so repeated calls are cheap and
// return the same configuration for the lifetime of the process. Parse skips
// the cache. ResetCache exists for tests.
package config
