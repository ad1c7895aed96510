// Package config is the layered Viper configuration for scadast's CLI,
// LSP, and MCP surfaces. Adapted from the teacher's pkg/config/config.go —
// the core scadast.Parser itself takes no configuration (spec §5/§6); only
// the surfaces that wrap it do.
package config

import "errors"

// Config is the top-level configuration struct for scadast's long-running
// surfaces. Field tags use mapstructure for Viper unmarshalling.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// ServerConfig holds settings shared by the batch CLI, LSP, and MCP
// surfaces.
type ServerConfig struct {
	// Workers bounds the batch CLI's per-file parallelism (spec §5: each
	// worker owns an independent Parser instance).
	Workers int `mapstructure:"workers"`
	// MaxSourceBytes rejects a source file above this size before parsing,
	// independent of the core parser, which has no size limit of its own.
	MaxSourceBytes int64 `mapstructure:"max_source_bytes"`
}

// CacheConfig holds the parsed-AST result cache's settings.
type CacheConfig struct {
	Enabled bool  `mapstructure:"enabled"`
	MaxSize int64 `mapstructure:"max_size_bytes"`
}

// LoggingConfig holds slog output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" | "text"
}

// TracingConfig holds OTel exporter settings.
type TracingConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// Sentinel errors for configuration validation.
var (
	ErrInvalidWorkers        = errors.New("server.workers must be non-negative")
	ErrInvalidMaxSourceBytes = errors.New("server.max_source_bytes must be positive")
	ErrInvalidCacheSize      = errors.New("cache.max_size_bytes must be non-negative")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of debug, info, warn, error")
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Server.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.Server.MaxSourceBytes <= 0 {
		return ErrInvalidMaxSourceBytes
	}

	if c.Cache.MaxSize < 0 {
		return ErrInvalidCacheSize
	}

	if !validLogLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}
