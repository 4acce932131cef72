package metrics

import (
	"runtime"
	"strconv"
	"time"
)

// Analysis outcomes used as the status label.
const (
	StatusOK        = "ok"
	StatusCached    = "cached"
	StatusTruncated = "truncated"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// RecordAnalysis records the outcome of one analysis
func (r *Registry) RecordAnalysis(status string, duration time.Duration) {
	r.AnalysesTotal.WithLabelValues(status).Inc()
	r.StageDuration.WithLabelValues("total").Observe(duration.Seconds())
}

// RecordStage records the duration of one pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordCacheLookup records whether a cached result was reused
func (r *Registry) RecordCacheLookup(hit bool) {
	if hit {
		r.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	r.CacheLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordRingSearch records the result of a ring enumeration
func (r *Registry) RecordRingSearch(ringSizes []int, backEdges int, truncated bool) {
	r.RingsFound.Observe(float64(len(ringSizes)))
	r.BackEdges.Observe(float64(backEdges))
	for _, n := range ringSizes {
		r.RingSizes.WithLabelValues(strconv.Itoa(n)).Inc()
	}
	if truncated {
		r.RingSearchTruncations.Inc()
	}
}

// RecordOrientation records how many rings were orientated
func (r *Registry) RecordOrientation(orientated int) {
	r.OrientatedRingsTotal.Add(float64(orientated))
}

// RecordLinkages records the number of linkage paths found
func (r *Registry) RecordLinkages(paths int) {
	r.LinkagePathsFound.Observe(float64(paths))
}

// RecordPucker records a ring classification
func (r *Registry) RecordPucker(method, family string, confident bool) {
	r.PuckerClassifications.WithLabelValues(method, family).Inc()
	if !confident {
		r.LowConfidencePuckers.WithLabelValues(method).Inc()
	}
}

// TrackInFlight increments the in-flight gauge and returns its release func
func (r *Registry) TrackInFlight() func() {
	r.AnalysesInFlight.Inc()
	return r.AnalysesInFlight.Dec
}

// UpdateSystemMetrics samples uptime, goroutines and memory
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
