// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

func newOpts(name, help string, opts []OptsFunc) *mOpts {
	opt := &mOpts{
		name: name,
		help: help,
	}
	for _, optsFunc := range opts {
		optsFunc(opt)
	}
	return opt
}

// register adds c to the default registry. When an identical collector is
// already registered the existing one is returned, so package-level metrics
// survive being declared from more than one place.
func register[T prometheus.Collector](c T) T {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
