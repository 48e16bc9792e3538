// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package log

import (
	"fmt"
	"os"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/conf"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/logrus"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/zap"
)

type Fields map[string]interface{}

var globalLogger logger.Logger
var ErrorLoggerNotInitialize = fmt.Errorf("Logger not initialized")

func init() {
	_ = InitGlobalLogger(conf.DefaultConfig())
}

func InitGlobalLogger(cfg *conf.LogConfig) error {
	l, err := newLogger(cfg)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// NewLogger creates a logger independent of the global one, at the given level.
func NewLogger(level conf.Level) (logger.Logger, error) {
	cfg := conf.DefaultConfig()
	cfg.Level = level
	return newLogger(cfg)
}

func newLogger(cfg *conf.LogConfig) (logger.Logger, error) {
	switch cfg.Core {
	case conf.CoreZap:
		return zap.NewZapWrapper(cfg)
	default:
		return logrus.NewLogrusWrapper(cfg)
	}
}

func GlobalLogger() logger.Logger {
	if globalLogger == nil {
		panic(ErrorLoggerNotInitialize)
	}
	return globalLogger
}

func SetGlobalLogger(l logger.Logger) {
	globalLogger = l
}

func WithField(key string, value interface{}) logger.Logger {
	return GlobalLogger().WithField(key, value)
}

func Logf(level conf.Level, format string, v ...interface{}) {
	GlobalLogger().Logf(level, format, v...)
}

func Log(level conf.Level, v ...interface{}) {
	GlobalLogger().Log(level, v...)
}

func Info(args ...interface{}) {
	Log(conf.InfoLevel, args...)
}

func Infof(template string, args ...interface{}) {
	Logf(conf.InfoLevel, template, args...)
}

func Trace(args ...interface{}) {
	Log(conf.TraceLevel, args...)
}

func Tracef(template string, args ...interface{}) {
	Logf(conf.TraceLevel, template, args...)
}

func Debug(args ...interface{}) {
	Log(conf.DebugLevel, args...)
}

func Debugf(template string, args ...interface{}) {
	Logf(conf.DebugLevel, template, args...)
}

func Warn(args ...interface{}) {
	Log(conf.WarnLevel, args...)
}

func Warnf(template string, args ...interface{}) {
	Logf(conf.WarnLevel, template, args...)
}

func Error(args ...interface{}) {
	Log(conf.ErrorLevel, args...)
}

func Errorf(template string, args ...interface{}) {
	Logf(conf.ErrorLevel, template, args...)
}

func Fatal(args ...interface{}) {
	Log(conf.FatalLevel, args...)
	os.Exit(1)
}

func Fatalf(template string, args ...interface{}) {
	Logf(conf.FatalLevel, template, args...)
	os.Exit(1)
}
