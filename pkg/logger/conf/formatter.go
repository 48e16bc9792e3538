// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package conf

// Formatter selects the log line encoding.
type Formatter string

const (
	JSONFormatter       Formatter = "json"
	ConsoleFormatter    Formatter = "console"
	StructuredFormatter Formatter = "structured"
)

func (f Formatter) Valid() bool {
	switch f {
	case JSONFormatter, ConsoleFormatter, StructuredFormatter:
		return true
	}
	return false
}
