package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zap.DebugLevel,
		"INFO":    zap.InfoLevel,
		" warn ":  zap.WarnLevel,
		"error":   zap.ErrorLevel,
		"panic":   zap.PanicLevel,
		"":        zap.InfoLevel,
		"verbose": zap.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNew(t *testing.T) {
	l, err := New("debug", "ledger")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = New("error", "ledger")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.WarnLevel))
}

func TestFromContext_TagsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := WithRequestID(context.Background(), "req-1")
	FromContext(ctx, base).Info("with id")
	FromContext(context.Background(), base).Info("without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestRequestID_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, 42)
	assert.Empty(t, RequestID(ctx))
}
