// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package logrus

import (
	"context"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/conf"
	"github.com/sirupsen/logrus"
)

type Wrapper struct {
	entry *logrus.Entry
}

func NewLogrusWrapper(cfg *conf.LogConfig) (*Wrapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(logger.Output(cfg))
	l.SetLevel(toLogrusLevel(cfg.Level))
	switch cfg.Format {
	case conf.JSONFormatter:
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	case conf.StructuredFormatter:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	}
	return &Wrapper{entry: logrus.NewEntry(l)}, nil
}

func (w *Wrapper) Log(level conf.Level, args ...interface{}) {
	w.entry.Log(toLogrusLevel(level), args...)
}

func (w *Wrapper) Logf(level conf.Level, format string, args ...interface{}) {
	w.entry.Logf(toLogrusLevel(level), format, args...)
}

func (w *Wrapper) Debugf(format string, args ...interface{}) {
	w.entry.Debugf(format, args...)
}

func (w *Wrapper) Infof(format string, args ...interface{}) {
	w.entry.Infof(format, args...)
}

func (w *Wrapper) Warnf(format string, args ...interface{}) {
	w.entry.Warnf(format, args...)
}

func (w *Wrapper) Errorf(format string, args ...interface{}) {
	w.entry.Errorf(format, args...)
}

func (w *Wrapper) WithField(key string, value interface{}) logger.Logger {
	return &Wrapper{entry: w.entry.WithField(key, value)}
}

func (w *Wrapper) WithContext(ctx context.Context) logger.Logger {
	fields := logger.TraceFields(ctx)
	if len(fields) == 0 {
		return w
	}
	return &Wrapper{entry: w.entry.WithFields(fields)}
}

func toLogrusLevel(level conf.Level) logrus.Level {
	switch level {
	case conf.TraceLevel:
		return logrus.TraceLevel
	case conf.DebugLevel:
		return logrus.DebugLevel
	case conf.WarnLevel:
		return logrus.WarnLevel
	case conf.ErrorLevel:
		return logrus.ErrorLevel
	case conf.FatalLevel:
		// Fatal exit is handled by the log package, keep logrus from calling os.Exit.
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
