package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRingMetrics() {
	r.RingsFound = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paperchain_rings_found",
			Help:    "Number of small rings found per analysis",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 500, 2000},
		},
	)

	r.RingSizes = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperchain_ring_sizes_total",
			Help: "Rings found by number of member atoms",
		},
		[]string{"size"},
	)

	r.BackEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paperchain_back_edges",
			Help:    "Spanning forest back edges per analysis",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 1000},
		},
	)

	r.RingSearchTruncations = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "paperchain_ring_search_truncations_total",
			Help: "Ring searches stopped by the safety cap",
		},
	)

	r.OrientatedRingsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "paperchain_orientated_rings_total",
			Help: "Rings canonically orientated",
		},
	)

	r.LinkagePathsFound = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paperchain_linkage_paths_found",
			Help:    "Number of ring linkage paths found per analysis",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 1000},
		},
	)

	r.PuckerClassifications = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperchain_pucker_classifications_total",
			Help: "Ring pucker classifications by method and family",
		},
		[]string{"method", "family"},
	)

	r.LowConfidencePuckers = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperchain_pucker_low_confidence_total",
			Help: "Classifications outside the reference tolerance band",
		},
		[]string{"method"},
	)
}
