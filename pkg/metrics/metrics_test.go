// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMOpts_GetCounterOpts(t *testing.T) {
	tests := []struct {
		name         string
		opts         []OptsFunc
		expectedName string
		expectedNS   string
	}{
		{"default", nil, "requests_total", "evaldash"},
		{"custom namespace", []OptsFunc{WithNamespace("custom")}, "requests_total", "custom"},
		{"without suffix", []OptsFunc{WithoutSuffix()}, "requests", "evaldash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOpts("requests", "help", tt.opts).GetCounterOpts()
			assert.Equal(t, tt.expectedName, o.Name)
			assert.Equal(t, tt.expectedNS, o.Namespace)
			assert.Equal(t, "help", o.Help)
		})
	}
}

func TestMOpts_ConstLabels(t *testing.T) {
	o := newOpts("g", "h", []OptsFunc{WithConstLabels(map[string]string{"env": "test"})}).GetGaugeOpts()
	assert.Equal(t, "g_g", o.Name)
	assert.Equal(t, "test", o.ConstLabels["env"])
}

func TestCounterVec(t *testing.T) {
	c := NewCounterVec("test_counter_vec", "test", []string{"result"})
	c.Inc("ok")
	c.Add(2, "ok")
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Collector().WithLabelValues("ok")))

	again := NewCounterVec("test_counter_vec", "test", []string{"result"})
	again.Inc("ok")
	assert.Equal(t, 4.0, testutil.ToFloat64(c.Collector().WithLabelValues("ok")))
}

func TestGaugeVec(t *testing.T) {
	g := NewGaugeVec("test_gauge_vec", "test", []string{"k"})
	g.Set(5, "a")
	g.Inc("a")
	g.Dec("a")
	assert.Equal(t, 5.0, testutil.ToFloat64(g.Collector().WithLabelValues("a")))
	g.Delete("a")
	assert.Equal(t, 0, testutil.CollectAndCount(g.Collector()))
}

func TestHistogramVec(t *testing.T) {
	h := NewHistogramVec("test_histogram_vec", "test", []string{"k"}, nil)
	h.Observe(0.2, "a")
	assert.Equal(t, 1, testutil.CollectAndCount(h.Collector()))
}
