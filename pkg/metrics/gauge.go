// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import "github.com/prometheus/client_golang/prometheus"

type GaugeVec struct {
	gauges *prometheus.GaugeVec
}

func NewGaugeVec(metricsName, help string, labels []string, opts ...OptsFunc) *GaugeVec {
	opt := newOpts(metricsName, help, opts)
	gv := prometheus.NewGaugeVec(opt.GetGaugeOpts(), labels)
	return &GaugeVec{gauges: register(gv)}
}

func (g *GaugeVec) Set(v float64, labels ...string) {
	g.gauges.WithLabelValues(labels...).Set(v)
}

func (g *GaugeVec) Inc(labels ...string) {
	g.gauges.WithLabelValues(labels...).Inc()
}

func (g *GaugeVec) Dec(labels ...string) {
	g.gauges.WithLabelValues(labels...).Dec()
}

func (g *GaugeVec) Delete(labels ...string) {
	g.gauges.DeleteLabelValues(labels...)
}

func (g *GaugeVec) Collector() *prometheus.GaugeVec {
	return g.gauges
}
