// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package evaluation

import (
	"sort"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metadata"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

// Normalize de-duplicates results by id, keeping the last one seen, decodes
// their metadata and orders them newest first. Ties on createdAt are broken by
// id so the output is deterministic. The input slice is not modified.
func Normalize(results []model.ScoreResult) []model.ScoreResult {
	out := make([]model.ScoreResult, 0, len(results))
	index := make(map[string]int, len(results))
	for _, r := range results {
		if i, ok := index[r.ID]; ok {
			out[i] = r
			continue
		}
		index[r.ID] = len(out)
		out = append(out, r)
	}
	metadata.Attach(out)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
