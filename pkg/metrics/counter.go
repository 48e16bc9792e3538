// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import "github.com/prometheus/client_golang/prometheus"

type CounterVec struct {
	counters *prometheus.CounterVec
}

func NewCounterVec(metricsName, help string, labels []string, opts ...OptsFunc) *CounterVec {
	opt := newOpts(metricsName, help, opts)
	cc := prometheus.NewCounterVec(opt.GetCounterOpts(), labels)
	return &CounterVec{counters: register(cc)}
}

func (c *CounterVec) Inc(labels ...string) {
	c.counters.WithLabelValues(labels...).Inc()
}

func (c *CounterVec) Add(count float64, labels ...string) {
	c.counters.WithLabelValues(labels...).Add(count)
}

func (c *CounterVec) Delete(labels ...string) {
	c.counters.DeleteLabelValues(labels...)
}

// Collector exposes the underlying vector, mostly for tests.
func (c *CounterVec) Collector() *prometheus.CounterVec {
	return c.counters
}
