// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package conf

import "fmt"

type Level string

const (
	TraceLevel Level = "trace"
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	FatalLevel Level = "fatal"
)

const (
	CoreLogrus = "logrus"
	CoreZap    = "zap"
)

type LogConfig struct {
	Level  Level       `yaml:"level" json:"level"`
	Format Formatter   `yaml:"format" json:"format"`
	Core   string      `yaml:"core" json:"core"`
	File   *FileConfig `yaml:"file" json:"file"`
}

// FileConfig enables a rotated log file next to stdout.
type FileConfig struct {
	Path       string `yaml:"path" json:"path"`
	MaxSizeMB  int    `yaml:"maxSizeMB" json:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups" json:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays" json:"maxAgeDays"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:  InfoLevel,
		Format: ConsoleFormatter,
		Core:   CoreLogrus,
	}
}

func (c *LogConfig) Validate() error {
	switch c.Level {
	case TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
	default:
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	if !c.Format.Valid() {
		return fmt.Errorf("invalid log format %q", c.Format)
	}
	if c.Core != "" && c.Core != CoreLogrus && c.Core != CoreZap {
		return fmt.Errorf("invalid log core %q", c.Core)
	}
	return nil
}
