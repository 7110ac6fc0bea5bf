package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaults(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestContextRoundTrip(t *testing.T) {
	log := zap.NewNop()
	ctx := context.Background()

	ctx, _ = WithRequestID(ctx, log, "req-1")
	ctx, _ = WithBusinessID(ctx, log, "biz-1")
	ctx, _ = WithLocationID(ctx, log, "loc-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "biz-1", GetBusinessID(ctx))
	assert.Equal(t, "loc-1", GetLocationID(ctx))
}

func TestFromContextFallback(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log, "missing logger must fall back to a no-op logger")
}

func TestWithTraceContextNoSpan(t *testing.T) {
	log := zap.NewNop()
	assert.Same(t, log, WithTraceContext(context.Background(), log))
}
