package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a discarding logger unless debug is set, in which case
// lexer records up to V(2) are written to stderr.
func newLogger(command string, debug bool) (logr.Logger, func(), error) {
	if !debug {
		return logr.Discard(), func() {}, nil
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-2))
	zapCfg.OutputPaths = []string{"stderr"}
	zl, err := zapCfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("build logger: %w", err)
	}
	logger := zapr.NewLogger(zl).WithValues("command", command)
	return logger, func() { _ = zl.Sync() }, nil
}
