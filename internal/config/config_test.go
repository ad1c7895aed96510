package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultServerWorkers, cfg.Server.Workers)
	assert.Equal(t, int64(DefaultServerMaxSourceBytes), cfg.Server.MaxSourceBytes)
	assert.Equal(t, DefaultLoggingLevel, cfg.Logging.Level)
}

func TestValidateRejectsNegativeWorkers(t *testing.T) {
	cfg := Config{
		Server:  ServerConfig{Workers: -1, MaxSourceBytes: 1},
		Logging: LoggingConfig{Level: "info"},
	}

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidWorkers)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Config{
		Server:  ServerConfig{Workers: 1, MaxSourceBytes: 1},
		Logging: LoggingConfig{Level: "verbose"},
	}

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLogLevel)
}
