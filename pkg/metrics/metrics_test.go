package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.AnalysesTotal == nil {
		t.Error("AnalysesTotal not initialized")
	}
	if r.StageDuration == nil {
		t.Error("StageDuration not initialized")
	}
	if r.RingsFound == nil {
		t.Error("RingsFound not initialized")
	}
	if r.PuckerClassifications == nil {
		t.Error("PuckerClassifications not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()
	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Observer) uint64 {
	t.Helper()
	m, ok := h.(prometheus.Metric)
	if !ok {
		t.Fatal("observer is not a metric")
	}
	var metric dto.Metric
	if err := m.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.GetHistogram().GetSampleCount()
}

func TestRecordAnalysis(t *testing.T) {
	r := NewRegistry()

	r.RecordAnalysis(StatusOK, 20*time.Millisecond)
	r.RecordAnalysis(StatusOK, 30*time.Millisecond)
	r.RecordAnalysis(StatusCancelled, time.Millisecond)

	ok, err := r.AnalysesTotal.GetMetricWithLabelValues(StatusOK)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, ok); got != 2 {
		t.Errorf("ok analyses = %v, want 2", got)
	}

	total, err := r.StageDuration.GetMetricWithLabelValues("total")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := histogramCount(t, total); got != 3 {
		t.Errorf("total duration samples = %d, want 3", got)
	}
}

func TestRecordStage(t *testing.T) {
	r := NewRegistry()
	r.RecordStage("rings", 5*time.Millisecond)

	h, err := r.StageDuration.GetMetricWithLabelValues("rings")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := histogramCount(t, h); got != 1 {
		t.Errorf("rings stage samples = %d, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	r := NewRegistry()
	r.RecordCacheLookup(true)
	r.RecordCacheLookup(false)
	r.RecordCacheLookup(false)

	tests := []struct {
		label string
		want  float64
	}{
		{"hit", 1},
		{"miss", 2},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			c, err := r.CacheLookupsTotal.GetMetricWithLabelValues(tt.label)
			if err != nil {
				t.Fatalf("Failed to get metric: %v", err)
			}
			if got := counterValue(t, c); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestRecordRingSearch(t *testing.T) {
	r := NewRegistry()
	r.RecordRingSearch([]int{6, 6, 5}, 3, false)
	r.RecordRingSearch([]int{4}, 40, true)

	six, err := r.RingSizes.GetMetricWithLabelValues("6")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, six); got != 2 {
		t.Errorf("six-rings = %v, want 2", got)
	}
	if got := counterValue(t, r.RingSearchTruncations); got != 1 {
		t.Errorf("truncations = %v, want 1", got)
	}
	if got := histogramCount(t, r.RingsFound); got != 2 {
		t.Errorf("rings found samples = %d, want 2", got)
	}
}

func TestRecordPucker(t *testing.T) {
	r := NewRegistry()
	r.RecordPucker("hill-reilly", "chair", true)
	r.RecordPucker("hill-reilly", "chair", false)
	r.RecordPucker("cremer-pople", "none", true)

	chair, err := r.PuckerClassifications.GetMetricWithLabelValues("hill-reilly", "chair")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, chair); got != 2 {
		t.Errorf("chair = %v, want 2", got)
	}

	low, err := r.LowConfidencePuckers.GetMetricWithLabelValues("hill-reilly")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if got := counterValue(t, low); got != 1 {
		t.Errorf("low confidence = %v, want 1", got)
	}
}

func TestRecordOrientationAndLinkages(t *testing.T) {
	r := NewRegistry()
	r.RecordOrientation(3)
	r.RecordOrientation(2)
	r.RecordLinkages(4)

	if got := counterValue(t, r.OrientatedRingsTotal); got != 5 {
		t.Errorf("orientated = %v, want 5", got)
	}
	if got := histogramCount(t, r.LinkagePathsFound); got != 1 {
		t.Errorf("linkage samples = %d, want 1", got)
	}
}

func TestTrackInFlight(t *testing.T) {
	r := NewRegistry()
	done := r.TrackInFlight()

	var metric dto.Metric
	if err := r.AnalysesInFlight.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}

	done()
	if err := r.AnalysesInFlight.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 0 {
		t.Errorf("in flight after release = %v, want 0", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	var metric dto.Metric
	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.GetGauge().GetValue() < 1 {
		t.Error("Expected at least one goroutine")
	}
	if err := r.MemorySysBytes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.GetGauge().GetValue() <= 0 {
		t.Error("Expected non-zero system memory")
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	r.RecordAnalysis(StatusOK, time.Millisecond)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "paperchain_") {
			t.Errorf("unexpected metric name %q", f.GetName())
		}
		if f.GetName() == "paperchain_analyses_total" {
			found = true
		}
	}
	if !found {
		t.Error("paperchain_analyses_total not gathered")
	}
}
