// Package logging builds the command's logr.Logger on top of zap.
package logging

import (
	"fmt"

	"scaph2cc/internal/config"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr at the given level, and a
// function flushing buffered entries. "debug" enables V(1) messages.
func New(level string) (logr.Logger, func(), error) {
	if err := config.ValidateLogLevel(level); err != nil {
		return logr.Discard(), func() {}, err
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel(level))
	zapConfig.DisableStacktrace = true
	zapConfig.DisableCaller = true
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	zapLog, err := zapConfig.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("failed to build logger: %w", err)
	}
	// Sync on a terminal stderr reports EINVAL; nothing is lost in that case
	flush := func() { _ = zapLog.Sync() }
	return zapr.NewLogger(zapLog), flush, nil
}

func zapLevel(level string) zapcore.Level {
	switch level {
	case config.LevelDebug:
		// logr V(1) maps to zap level -1
		return zapcore.DebugLevel
	case config.LevelError:
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}
