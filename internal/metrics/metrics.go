// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics records rendering metrics with Prometheus.
package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// A Recorder holds the rendering metrics.
// A nil *Recorder discards everything.
type Recorder struct {
	renders     *prom.CounterVec
	duration    *prom.HistogramVec
	highlighted *prom.CounterVec
	inputBytes  prom.Histogram
}

// NewRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "markdown",
			Name:      "renders_total",
			Help:      "Documents rendered, by entry point and result",
		}, []string{"mode", "result"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "markdown",
			Name:      "render_duration_seconds",
			Help:      "Time to render one document",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		highlighted: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "markdown",
			Name:      "highlight_blocks_total",
			Help:      "Code blocks passed to the highlighter, by whether the language was known",
		}, []string{"known"}),
		inputBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "markdown",
			Name:      "input_bytes",
			Help:      "Size of rendered Markdown sources",
			Buckets:   prom.ExponentialBuckets(256, 4, 8),
		}),
	}
	reg.MustRegister(r.renders, r.duration, r.highlighted, r.inputBytes)
	return r
}

// ObserveRender records one render through the named entry point
// ("cli", "watch", "http").
func (r *Recorder) ObserveRender(mode string, size int, d time.Duration, err error) {
	if r == nil {
		return
	}
	res := "success"
	if err != nil {
		res = "failed"
	}
	r.renders.WithLabelValues(mode, res).Inc()
	r.duration.WithLabelValues(mode).Observe(d.Seconds())
	r.inputBytes.Observe(float64(size))
}

// ObserveHighlight records one highlighted block.
// Its signature matches highlight.WithObserver.
func (r *Recorder) ObserveHighlight(lang string, known bool) {
	if r == nil {
		return
	}
	k := "false"
	if known {
		k = "true"
	}
	r.highlighted.WithLabelValues(k).Inc()
}

// HTTPHandler returns an http.Handler that serves the metrics in reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		reg = prom.DefaultRegisterer.(*prom.Registry)
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve serves the metrics in reg at /metrics on ln
// until ctx is done, then shuts the server down.
func Serve(ctx context.Context, ln net.Listener, reg *prom.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	select {
	case err := <-errc:
		return errors.Wrap(err, "serve metrics")
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}
