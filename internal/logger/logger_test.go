package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"none", "debug", "info", "warn", "error"} {
		for _, format := range []string{"json", "text"} {
			l, err := NewLogger(format, level)
			require.NoError(t, err, "%s/%s", format, level)
			require.NotNil(t, l)
		}
	}
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger("json", "loud")
	require.ErrorContains(t, err, "unknown log level")

	_, err = NewLogger("xml", "info")
	require.ErrorContains(t, err, "unknown log format")

	assert.Panics(t, func() { MustNewLogger("json", "loud") })
}

func TestZapLogger_WithContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := (&ZapLogger{zap.New(core)}).With(zap.String("target", "threaded"))

	l.DebugWithContext(context.Background(), "launch", zap.Int("blocks", 4))
	l.ErrorWithContext(context.Background(), "launch failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "launch", entries[0].Message)
	assert.Equal(t, "threaded", entries[0].ContextMap()["target"])
	assert.Equal(t, int64(4), entries[0].ContextMap()["blocks"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}
