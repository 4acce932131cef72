package validation

import (
	"strings"
	"testing"
)

func TestValidateAnalysisRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *AnalysisRequest
		wantErr string
	}{
		{"valid", &AnalysisRequest{MaxPathLength: 5, MaxRingSize: 10}, ""},
		{"valid with method", &AnalysisRequest{MaxPathLength: 1, MaxRingSize: 3, Method: "cremer-pople"}, ""},
		{"nil", nil, "cannot be nil"},
		{"ring too small", &AnalysisRequest{MaxPathLength: 5, MaxRingSize: 2}, "MaxRingSize: must be at least 3"},
		{"ring too large", &AnalysisRequest{MaxPathLength: 5, MaxRingSize: 65}, "MaxRingSize: must not exceed 64"},
		{"path zero", &AnalysisRequest{MaxPathLength: 0, MaxRingSize: 6}, "MaxPathLength: must be at least 1"},
		{"bad method", &AnalysisRequest{MaxPathLength: 5, MaxRingSize: 6, Method: "altona"}, "Method: must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalysisRequest(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAtomRecord(t *testing.T) {
	tests := []struct {
		name    string
		rec     *AtomRecord
		wantErr bool
	}{
		{"carbon", &AtomRecord{Element: "C", Name: "C1"}, false},
		{"chlorine", &AtomRecord{Element: "Cl", Name: "CL1"}, false},
		{"missing element", &AtomRecord{Name: "C1"}, true},
		{"digits in element", &AtomRecord{Element: "C1"}, true},
		{"long name", &AtomRecord{Element: "C", Name: "CARBON123"}, true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAtomRecord(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAtomRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	for _, n := range []int{1, 8, MaxBatchWorkers} {
		if err := ValidateWorkers(n); err != nil {
			t.Errorf("ValidateWorkers(%d) = %v", n, err)
		}
	}
	for _, n := range []int{0, -1, MaxBatchWorkers + 1} {
		if err := ValidateWorkers(n); err == nil {
			t.Errorf("ValidateWorkers(%d) expected error", n)
		}
	}
}
