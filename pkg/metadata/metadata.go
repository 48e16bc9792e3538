// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package metadata decodes the free-form metadata attached to score results.
// Producers are inconsistent: the payload may be a JSON object, or a JSON
// string that itself contains the object.
package metadata

import (
	"encoding/json"
	"strings"

	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

const maxUnwrapDepth = 3

// Decode returns the metadata object carried by raw. It never fails: empty,
// malformed or non-object input yields an empty map.
func Decode(raw string) map[string]any {
	text := strings.TrimSpace(raw)
	if text == "" {
		return map[string]any{}
	}
	for depth := 0; depth < maxUnwrapDepth; depth++ {
		var v any
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			log.Debugf("metadata: not valid json at depth %d: %v", depth, err)
			return map[string]any{}
		}
		switch val := v.(type) {
		case map[string]any:
			return val
		case string:
			text = strings.TrimSpace(val)
			if text == "" {
				return map[string]any{}
			}
		default:
			log.Debugf("metadata: unexpected %T payload", v)
			return map[string]any{}
		}
	}
	log.Debugf("metadata: still encoded after %d levels", maxUnwrapDepth)
	return map[string]any{}
}

// Attach fills ParsedMetadata for every result in place.
func Attach(results []model.ScoreResult) {
	for i := range results {
		results[i].ParsedMetadata = Decode(string(results[i].Metadata))
	}
}
