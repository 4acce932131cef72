package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperchain_analyses_total",
			Help: "Total number of ring analyses by outcome",
		},
		[]string{"status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paperchain_analysis_duration_seconds",
			Help:    "Duration of each analysis stage in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"stage"},
	)

	r.AnalysesInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "paperchain_analyses_in_flight",
			Help: "Number of analyses currently running",
		},
	)

	r.CacheLookupsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperchain_cache_lookups_total",
			Help: "Ring and linkage cache lookups by result",
		},
		[]string{"result"},
	)
}
