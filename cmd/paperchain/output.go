package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/common/expfmt"

	"github.com/dd0wney/cluso-paperchain/pkg/analysis"
	"github.com/dd0wney/cluso-paperchain/pkg/config"
	"github.com/dd0wney/cluso-paperchain/pkg/metrics"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/report"
)

// writeReport writes the report for res. With several inputs the output
// path names a directory that receives one report per molecule.
func writeReport(cfg config.OutputConfig, many bool, res *analysis.Result, v molecule.AtomView) error {
	if cfg.Path == "" {
		return nil
	}
	rep := report.Build(res, v)
	opts := report.EncodeOptions{Compress: cfg.Compress, Indent: cfg.Indent}

	if cfg.Path == "-" {
		return report.Write(os.Stdout, rep, opts)
	}

	path := cfg.Path
	if many {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
		ext := ".json"
		if cfg.Compress {
			ext = ".json.sz"
		}
		path = filepath.Join(cfg.Path, res.Molecule+ext)
	}

	data, err := report.Marshal(rep, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// writeMetrics dumps the registry in the Prometheus text format.
func writeMetrics(path string, reg *metrics.Registry) error {
	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer f.Close()

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return f.Close()
}
