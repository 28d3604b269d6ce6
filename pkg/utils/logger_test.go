package utils

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "debug", OutputPath: "stdout", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(LoggerConfig{Level: "bogus", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "unknown level falls back to info")
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	logger, err := NewLogger(LoggerConfig{Level: "info", OutputPath: path, Format: "json"})
	require.NoError(t, err)
	logger.Info("hello")
	assert.FileExists(t, path)
}

func TestKVLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	kv := NewKVLogger(zap.New(core))

	kv.Info("processed", "file", "a.pdf", "count", 3)
	kv.Warn("mismatch", "file", "b.pdf")
	kv.Error("failed", "error", errors.New("boom"), 42, "ignored")

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "processed", entries[0].Message)
	assert.Equal(t, "a.pdf", entries[0].ContextMap()["file"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["count"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
	assert.Len(t, entries[2].Context, 1)
}

func TestKVLogger_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewKVLogger(nil).Info("discarded")
	})
}
