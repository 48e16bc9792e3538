// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import "github.com/prometheus/client_golang/prometheus"

const defaultNamespace = "evaldash"

type OptsFunc func(opts *mOpts)

type mOpts struct {
	name          string
	help          string
	namespace     *string
	labels        map[string]string
	withoutSuffix bool
}

func WithNamespace(ns string) OptsFunc {
	return func(opts *mOpts) {
		opts.namespace = &ns
	}
}

func WithConstLabels(labels map[string]string) OptsFunc {
	return func(opts *mOpts) {
		opts.labels = labels
	}
}

// WithoutSuffix keeps the metric name as given instead of appending the type suffix.
func WithoutSuffix() OptsFunc {
	return func(opts *mOpts) {
		opts.withoutSuffix = true
	}
}

func (o *mOpts) getNamespace() string {
	if o.namespace != nil {
		return *o.namespace
	}
	return defaultNamespace
}

func (o *mOpts) getName(suffix string) string {
	if o.withoutSuffix {
		return o.name
	}
	return o.name + suffix
}

func (o *mOpts) GetCounterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   o.getNamespace(),
		Name:        o.getName("_total"),
		Help:        o.help,
		ConstLabels: o.labels,
	}
}

func (o *mOpts) GetGaugeOpts() prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   o.getNamespace(),
		Name:        o.getName("_g"),
		Help:        o.help,
		ConstLabels: o.labels,
	}
}

func (o *mOpts) GetHistogramOpts(buckets []float64) prometheus.HistogramOpts {
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	return prometheus.HistogramOpts{
		Namespace:   o.getNamespace(),
		Name:        o.getName("_seconds"),
		Help:        o.help,
		ConstLabels: o.labels,
		Buckets:     buckets,
	}
}
