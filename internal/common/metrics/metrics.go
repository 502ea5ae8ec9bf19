// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComparisonRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comparison_runs_total",
			Help: "Total number of comparison runs by status",
		},
		[]string{"status"},
	)

	ComparisonDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "comparison_duration_seconds",
			Help: "Duration of a full comparison run in seconds",
		},
	)

	MissingProducts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comparison_missing_products_total",
			Help: "Total number of requested items missing from a store catalog",
		},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog loads by source and status",
		},
		[]string{"source", "status"},
	)
)
