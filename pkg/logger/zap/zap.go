// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package zap

import (
	"context"
	"fmt"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/conf"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Wrapper struct {
	sugar *zap.SugaredLogger
}

func NewZapWrapper(cfg *conf.LogConfig) (*Wrapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if cfg.Format == conf.JSONFormatter {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(logger.Output(cfg)), toZapLevel(cfg.Level))
	return &Wrapper{sugar: zap.New(core).Sugar()}, nil
}

func (w *Wrapper) Log(level conf.Level, args ...interface{}) {
	w.sugar.Log(toZapLevel(level), fmt.Sprint(args...))
}

func (w *Wrapper) Logf(level conf.Level, format string, args ...interface{}) {
	w.sugar.Logf(toZapLevel(level), format, args...)
}

func (w *Wrapper) Debugf(format string, args ...interface{}) {
	w.sugar.Debugf(format, args...)
}

func (w *Wrapper) Infof(format string, args ...interface{}) {
	w.sugar.Infof(format, args...)
}

func (w *Wrapper) Warnf(format string, args ...interface{}) {
	w.sugar.Warnf(format, args...)
}

func (w *Wrapper) Errorf(format string, args ...interface{}) {
	w.sugar.Errorf(format, args...)
}

func (w *Wrapper) WithField(key string, value interface{}) logger.Logger {
	return &Wrapper{sugar: w.sugar.With(key, value)}
}

func (w *Wrapper) WithContext(ctx context.Context) logger.Logger {
	fields := logger.TraceFields(ctx)
	if len(fields) == 0 {
		return w
	}
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &Wrapper{sugar: w.sugar.With(kv...)}
}

func toZapLevel(level conf.Level) zapcore.Level {
	switch level {
	case conf.TraceLevel, conf.DebugLevel:
		return zapcore.DebugLevel
	case conf.WarnLevel:
		return zapcore.WarnLevel
	case conf.ErrorLevel, conf.FatalLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
