package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the transport-level Prometheus metrics for the gateway.
// Identifier-domain metrics live in internal/identify/metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge
}

// New creates and registers all transport metrics on the default registerer.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "secid_http_requests_total",
			Help: "Total number of HTTP requests, labeled by route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "secid_http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds, labeled by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		InFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "secid_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		}),
	}
}
