package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReport(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Report(nil)
	assert.Zero(t, logs.Len())

	Report(errors.New("boom"), zap.String("op", "probe"))
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "multikey", entry.LoggerName)
	assert.Equal(t, "probe", entry.ContextMap()["op"])
	assert.Equal(t, "boom", entry.ContextMap()["error"])
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Debug("hidden")
	Info("info")
	Warn("warn")
	Error("error")

	assert.Equal(t, 3, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("warn").Len())
}

func TestSetLogger_Nil(t *testing.T) {
	SetLogger(nil)

	assert.NotNil(t, L())
	assert.NotPanics(t, func() { Info("dropped") })
}
