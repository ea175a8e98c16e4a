// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics instruments the distributor's publish/decode/dispatch
// path with Prometheus counters and a payload-size histogram. All
// collectors register via promauto against a private registry, never
// the global default one, so embedding this library in a larger binary
// cannot collide with that binary's own metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the distributor's Prometheus collectors.
type Registry struct {
	reg *prometheus.Registry

	PublishTotal      prometheus.Counter
	DecodeTotal       prometheus.Counter
	DecodeErrorsTotal *prometheus.CounterVec
	DispatchTotal     prometheus.Counter
	EncodeBytes       prometheus.Histogram
}

// New creates a Registry with every collector registered against a
// fresh, private prometheus.Registry.
func New() *Registry {
	reg := prometheus.NewRegistry()
	return &Registry{
		reg: reg,
		PublishTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vsd_publish_total",
			Help: "Total number of successful Publish calls.",
		}),
		DecodeTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vsd_decode_total",
			Help: "Total number of inbound payloads decoded.",
		}),
		DecodeErrorsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "vsd_decode_errors_total",
			Help: "Total number of decode failures, by error kind.",
		}, []string{"kind"}),
		DispatchTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "vsd_dispatch_total",
			Help: "Total number of subscription bus dispatches.",
		}),
		EncodeBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "vsd_encode_bytes",
			Help:    "Size in bytes of payloads produced by Publish.",
			Buckets: prometheus.ExponentialBuckets(16, 2, 12),
		}),
	}
}

// Handler returns the http.Handler serving this registry's exposition
// format, for mounting under /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
