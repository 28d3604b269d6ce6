package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(DefaultConfig(), nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Server.Port = 0
	_, err = NewContainer(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestContainer_Lifecycle(t *testing.T) {
	c, err := NewContainer(DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	health := c.Health()
	assert.False(t, health.Overall)

	require.NoError(t, c.Start(context.Background()))
	assert.True(t, c.Ready())
	assert.NotNil(t, c.Extractor())
	assert.NotNil(t, c.BatchService())
	require.NotNil(t, c.HTTPServer())
	assert.Equal(t, "0.0.0.0:8000", c.HTTPServer().Address())

	health = c.Health()
	assert.True(t, health.Overall)
	assert.True(t, health.Components["extractor"].Healthy)

	assert.Error(t, c.Start(context.Background()), "second start must fail")

	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(context.Background()))
}

func TestContainer_StrictValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Upload.StrictValidation = true

	c, err := NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	assert.NotNil(t, c.extraction.Validator)
}

func TestContainer_UnknownEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extractor.Engine = "tesseract"

	c, err := NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)

	err = c.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, c.Ready())
}

func TestContainer_StartCanceled(t *testing.T) {
	c, err := NewContainer(DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Start(ctx), context.Canceled)
	assert.False(t, c.Ready())
	assert.Nil(t, c.HTTPServer())
}
