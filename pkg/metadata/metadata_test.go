// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metadata

import (
	"encoding/json"
	"testing"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	single := `{"human_label":"Yes","correct":true}`
	doubleBytes, err := json.Marshal(single)
	require.NoError(t, err)
	tripleBytes, err := json.Marshal(string(doubleBytes))
	require.NoError(t, err)
	quadBytes, err := json.Marshal(string(tripleBytes))
	require.NoError(t, err)

	want := map[string]any{"human_label": "Yes", "correct": true}

	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{"single encoded", single, want},
		{"double encoded", string(doubleBytes), want},
		{"triple encoded", string(tripleBytes), want},
		{"too deep", string(quadBytes), map[string]any{}},
		{"empty", "", map[string]any{}},
		{"whitespace", "   ", map[string]any{}},
		{"malformed", "{not json", map[string]any{}},
		{"array", `[1,2]`, map[string]any{}},
		{"number", `42`, map[string]any{}},
		{"empty string payload", `""`, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttach(t *testing.T) {
	results := []model.ScoreResult{
		{ID: "a", Metadata: model.RawText(`{"k":"v"}`)},
		{ID: "b", Metadata: model.RawText(`broken`)},
	}
	Attach(results)
	assert.Equal(t, map[string]any{"k": "v"}, results[0].ParsedMetadata)
	assert.Equal(t, map[string]any{}, results[1].ParsedMetadata)
}
