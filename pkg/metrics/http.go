// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes all metric names
const Namespace = "sitegen"

var (
	// Server metrics

	serverInFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "server_in_flight_requests",
		Help:      "A gauge of requests currently served by the development server.",
	})

	serverCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "server_requests_total",
		Help:      "A counter for requests to the development server.",
	},
		[]string{"code", "method"},
	)

	// histVec has no labels, making it a zero-dimensional ObserverVec.
	serverHistVec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "server_request_duration_seconds",
		Help:      "A histogram of request latencies.",
		Buckets:   prometheus.DefBuckets,
	},
		[]string{},
	)

	// Site metrics

	rebuildCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rebuilds_total",
		Help:      "A counter for site rebuilds triggered by source changes.",
	},
		[]string{"result"},
	)

	pagesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "site_pages",
		Help:      "Number of pages of the served site.",
	})
)

// RegisterServerMetrics registers all of the metrics in registry, or in the
// standard registry when registry is nil.
func RegisterServerMetrics(registry prometheus.Registerer) {
	ResetServerMetrics()
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(serverInFlightGauge, serverCounter, serverHistVec, rebuildCounter, pagesGauge)
}

// ResetServerMetrics resets the metrics. The function is useful for designing self-contained unit tests
// where the count of metrics matters.
func ResetServerMetrics() {
	serverInFlightGauge.Set(0.0)
	serverCounter.Reset()
	serverHistVec.Reset()
	rebuildCounter.Reset()
	pagesGauge.Set(0.0)
}

// InstrumentHandler wraps next metering in-flight requests, status codes and latency
func InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerInFlight(serverInFlightGauge,
		promhttp.InstrumentHandlerCounter(serverCounter,
			promhttp.InstrumentHandlerDuration(serverHistVec, next),
		),
	)
}

// ObserveSite records the size of the site being served
func ObserveSite(pages int) {
	pagesGauge.Set(float64(pages))
}

// ObserveRebuild records the outcome of a rebuild
func ObserveRebuild(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	rebuildCounter.WithLabelValues(result).Inc()
}

// Handler exposes the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
