// Package metrics holds Prometheus collectors for identifier operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the identify service.
type Metrics struct {
	ValidationsTotal *prometheus.CounterVec
	IssuesTotal      *prometheus.CounterVec
	DetectionsTotal  prometheus.Counter
	DetectionCounts  prometheus.Histogram
	AmbiguousParses  prometheus.Counter
	ScanDurationMs   prometheus.Histogram
	ScanMatches      prometheus.Histogram
	BatchSize        prometheus.Histogram
	BatchDurationMs  prometheus.Histogram
}

// New registers and returns identify metrics collectors.
func New() *Metrics {
	return &Metrics{
		ValidationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "secid_validations_total",
			Help: "Total number of identifier validations by scheme and result",
		}, []string{"scheme", "result"}),
		IssuesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "secid_validation_issues_total",
			Help: "Total number of validation issues by scheme and issue code",
		}, []string{"scheme", "issue"}),
		DetectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "secid_detections_total",
			Help: "Total number of detection requests",
		}),
		DetectionCounts: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "secid_detection_candidates",
			Help:    "Number of candidate schemes returned per detection",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		AmbiguousParses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "secid_ambiguous_parses_total",
			Help: "Total number of parse requests matching more than one scheme",
		}),
		ScanDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "secid_scan_duration_ms",
			Help:    "Duration of free-text extraction in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		ScanMatches: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "secid_scan_matches",
			Help:    "Number of identifiers extracted per scan",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "secid_batch_size",
			Help:    "Number of values per batch validation request",
			Buckets: []float64{1, 2, 5, 10, 16, 32, 64},
		}),
		BatchDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "secid_batch_duration_ms",
			Help:    "Duration of batch validation in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}
