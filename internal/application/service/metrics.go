package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	saleMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_mutations_total",
			Help: "Total number of sale create, update and delete attempts",
		},
		[]string{"operation", "status"},
	)

	reportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of reports generated",
		},
		[]string{"format", "status"},
	)

	reportBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_build_duration_seconds",
			Help:    "Duration of report generation including the sale fetch",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"format"},
	)

	idempotencyKeysPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "idempotency_keys_purged_total",
			Help: "Total number of expired idempotency keys removed",
		},
	)
)

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
