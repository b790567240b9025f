// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_http_requests_total",
		Help: "Total HTTP requests served, by route and status class",
	}, []string{"route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "registry_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

func ObserveRequest(route, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(route, status).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(seconds)
}
