package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(Config{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = New(Config{Level: "chatty"})
	require.Error(t, err)
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, zapcore.InfoLevel)

	logger.Debug("hidden")
	logger.Info("converted", zap.String("quantity", "Length"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "converted")
	assert.Contains(t, out, `"quantity": "Length"`)
}

func TestContext(t *testing.T) {
	logger := Test(t)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, Nop())
}
