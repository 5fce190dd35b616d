package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoggerConfigDefaults(t *testing.T) {
	cfg, err := LoggerConfig("production", "")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, serviceName, cfg.InitialFields["service"])

	cfg, err = LoggerConfig("development", "")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
	assert.Equal(t, "console", cfg.Encoding)
}

func TestLoggerConfigLevelOverride(t *testing.T) {
	cfg, err := LoggerConfig("production", "warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())

	_, err = LoggerConfig("production", "loud")
	assert.Error(t, err)
}
