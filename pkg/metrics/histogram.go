// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import "github.com/prometheus/client_golang/prometheus"

type HistogramVec struct {
	histograms *prometheus.HistogramVec
}

func NewHistogramVec(metricsName, help string, labels []string, buckets []float64, opts ...OptsFunc) *HistogramVec {
	opt := newOpts(metricsName, help, opts)
	hv := prometheus.NewHistogramVec(opt.GetHistogramOpts(buckets), labels)
	return &HistogramVec{histograms: register(hv)}
}

func (h *HistogramVec) Observe(v float64, labels ...string) {
	h.histograms.WithLabelValues(labels...).Observe(v)
}

func (h *HistogramVec) Collector() *prometheus.HistogramVec {
	return h.histograms
}
