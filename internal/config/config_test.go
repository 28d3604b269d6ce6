package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, int64(50*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, EngineFitz, cfg.Extractor.Engine)
	assert.True(t, cfg.Extractor.Fallback)
	assert.Equal(t, 0.01, cfg.Processing.ReconciliationTolerance)
	assert.Equal(t, 30, cfg.RateLimit.ProcessPerMin)
	assert.Equal(t, 20, cfg.RateLimit.ExportPerMin)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Address())
}

func TestLoad_File(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
server:
  port: 9100
  read_timeout: 5s
  allowed_origins: ["https://tally.example.com"]
processing:
  workers: 2
  reconciliation_tolerance: 0.5
extractor:
  engine: pdf
  fallback: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://tally.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2, cfg.Processing.Workers)
	assert.Equal(t, 0.5, cfg.Processing.ReconciliationTolerance)
	assert.Equal(t, EnginePDF, cfg.Extractor.Engine)
	assert.False(t, cfg.Extractor.Fallback)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9200")
	t.Setenv("TALLY_PROCESSING_WORKERS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Processing.Workers)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TALLY_EXTRACTOR_ENGINE=pdf\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TALLY_EXTRACTOR_ENGINE") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnginePDF, cfg.Extractor.Engine)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(writeConfig(t, "extractor:\n  engine: tesseract\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server:\n  port: 70000\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestToContainerConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	cc := cfg.ToContainerConfig()
	require.NoError(t, cc.Validate())
	assert.Equal(t, cfg.Server.Port, cc.Server.Port)
	assert.Equal(t, cfg.Upload.MaxFileSize, cc.Upload.MaxFileSize)
	assert.Equal(t, cfg.RateLimit.BurstPerClient, cc.RateLimit.Burst)
	assert.Equal(t, cfg.Extractor.Engine, cc.Extractor.Engine)
}
