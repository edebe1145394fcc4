// Package log holds the module-wide zap logger. It is silent until a
// logger is installed with SetLogger.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger installs l for all packages of the module. A nil l restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l.Named("multikey"))
}

// L returns the current logger.
func L() *zap.Logger {
	return logger.Load()
}

func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

// Report logs err and returns, leaving the caller's flow untouched.
func Report(err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	L().Error("non-fatal error", append(fields, zap.Error(err))...)
}
