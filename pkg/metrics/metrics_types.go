package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for ring analysis
type Registry struct {
	// Analysis Metrics
	AnalysesTotal     *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	AnalysesInFlight  prometheus.Gauge
	CacheLookupsTotal *prometheus.CounterVec

	// Ring Metrics
	RingsFound            prometheus.Histogram
	RingSizes             *prometheus.CounterVec
	BackEdges             prometheus.Histogram
	RingSearchTruncations prometheus.Counter
	OrientatedRingsTotal  prometheus.Counter
	LinkagePathsFound     prometheus.Histogram
	PuckerClassifications *prometheus.CounterVec
	LowConfidencePuckers  *prometheus.CounterVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initAnalysisMetrics()
	r.initRingMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
