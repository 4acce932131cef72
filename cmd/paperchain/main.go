package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-paperchain/pkg/analysis"
	"github.com/dd0wney/cluso-paperchain/pkg/config"
	"github.com/dd0wney/cluso-paperchain/pkg/logging"
	"github.com/dd0wney/cluso-paperchain/pkg/metrics"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/molio"
	"github.com/dd0wney/cluso-paperchain/pkg/pucker"
)

type options struct {
	configPath string
	format     string
	maxRing    int
	maxPath    int
	method     string
	out        string
	compress   bool
	logLevel   string
	logFormat  string
	workers    int
	noPerceive bool
	quiet      bool
	progress   bool
	metricsOut string
	timeout    time.Duration
	ringLimit  int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&opts.format, "format", "", "Input format: pdb, sdf or yaml (default: from extension)")
	flag.IntVar(&opts.maxRing, "max-ring", 10, "Largest ring size to search for")
	flag.IntVar(&opts.maxPath, "max-path", 5, "Longest linkage path between rings")
	flag.StringVar(&opts.method, "method", "hill-reilly", "Pucker coloring: hill-reilly or cremer-pople")
	flag.StringVar(&opts.out, "out", "", "Report file, '-' for stdout, or a directory for several inputs")
	flag.BoolVar(&opts.compress, "compress", false, "Snappy compress the report")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	flag.IntVar(&opts.workers, "workers", 4, "Concurrent analyses for several inputs")
	flag.BoolVar(&opts.noPerceive, "no-perceive", false, "Do not perceive bonds from distances")
	flag.BoolVar(&opts.quiet, "quiet", false, "Do not print the ring table")
	flag.BoolVar(&opts.progress, "progress", false, "Show search progress on stderr")
	flag.StringVar(&opts.metricsOut, "metrics-out", "", "Write Prometheus metrics in text format to this file")
	flag.DurationVar(&opts.timeout, "timeout", 0, "Give up after this long (0 waits forever)")
	flag.IntVar(&opts.ringLimit, "ring-limit", 0, "Override the ring safety cap")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: paperchain [flags] structure-file...\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "paperchain: %v\n", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file, then applies any flags given on the
// command line over it.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-ring":
			cfg.Analysis.MaxRingSize = opts.maxRing
		case "max-path":
			cfg.Analysis.MaxPathLength = opts.maxPath
		case "method":
			cfg.Analysis.Method = opts.method
		case "out":
			cfg.Output.Path = opts.out
		case "compress":
			cfg.Output.Compress = opts.compress
		case "log-level":
			cfg.Logging.Level = opts.logLevel
		case "log-format":
			cfg.Logging.Format = opts.logFormat
		case "workers":
			cfg.Batch.Workers = opts.workers
		case "no-perceive":
			cfg.Perception.Enabled = !opts.noPerceive
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(opts options, inputs []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.Logging.Level), format)
	logging.SetDefaultLogger(logger)

	method, _ := pucker.ParseMethod(cfg.Analysis.Method)
	params := analysis.Params{
		MaxPathLength: cfg.Analysis.MaxPathLength,
		MaxRingSize:   cfg.Analysis.MaxRingSize,
		Method:        method,
	}

	var inFormat molio.Format
	if opts.format != "" {
		if inFormat, err = molio.ParseFormat(opts.format); err != nil {
			return err
		}
	}
	readOpts := molio.Options{
		Perceive: cfg.Perception.Enabled,
		Perception: molecule.PerceiveOptions{
			Tolerance:             cfg.Perception.Tolerance,
			MinDistance:           cfg.Perception.MinDistance,
			MaxHydrogenBondLength: cfg.Perception.MaxHydrogenBondLength,
			SkipHydrogens:         cfg.Perception.SkipHydrogens,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	reg := metrics.NewRegistry()
	analyzerOpts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithMetrics(reg),
		analysis.WithRingLimit(opts.ringLimit),
	}

	items := make([]analysis.BatchItem, 0, len(inputs))
	for _, path := range inputs {
		timer := logging.StartTimer(logger, "structure loaded", logging.Path(path))
		m, err := molio.LoadFile(path, inFormat, readOpts)
		if err != nil {
			timer.EndError(err)
			return err
		}
		timer.End(logging.Count(m.AtomCount()), logging.Int("bonds", m.TotalBonds()))
		items = append(items, analysis.BatchItem{Name: m.Name, Structure: m})
	}

	var results []analysis.BatchResult
	var batchErr error
	if len(items) == 1 {
		var bar *progressPrinter
		if opts.progress {
			bar = newProgressPrinter(os.Stderr)
			analyzerOpts = append(analyzerOpts, analysis.WithProgress(bar.update))
		}
		a, err := analysis.New(items[0].Structure, append(analyzerOpts, analysis.WithName(items[0].Name))...)
		if err != nil {
			return err
		}
		res, err := a.Analyze(ctx, params)
		if bar != nil {
			bar.done()
		}
		results = []analysis.BatchResult{{Name: items[0].Name, Result: res, Err: err}}
	} else {
		results, err = analysis.AnalyzeBatch(ctx, items, params, cfg.Batch.Workers, analyzerOpts...)
		if results == nil {
			return err
		}
		batchErr = err
	}

	reg.UpdateSystemMetrics()
	if opts.metricsOut != "" {
		if err := writeMetrics(opts.metricsOut, reg); err != nil {
			return err
		}
	}

	firstErr := batchErr
	for i, br := range results {
		if br.Result == nil && br.Err == nil {
			logger.Warn("analysis not started", logging.Molecule(br.Name))
			continue
		}
		if br.Result == nil {
			logger.Error("analysis failed", logging.Molecule(br.Name), logging.Error(br.Err))
			firstErr = firstOf(firstErr, br.Err)
			continue
		}
		if br.Err != nil {
			logger.Warn("analysis incomplete", logging.Molecule(br.Name), logging.Error(br.Err))
			firstErr = firstOf(firstErr, br.Err)
		}
		if !opts.quiet && cfg.Output.Path != "-" {
			fmt.Println(renderResult(br.Result, items[i].Structure))
		}
		if err := writeReport(cfg.Output, len(results) > 1, br.Result, items[i].Structure); err != nil {
			return err
		}
	}
	return firstErr
}

func firstOf(prev, err error) error {
	if prev != nil {
		return prev
	}
	return err
}
