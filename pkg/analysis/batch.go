package analysis

import (
	"context"
	"slices"

	"github.com/dd0wney/cluso-paperchain/pkg/logging"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/parallel"
)

// BatchItem is one structure of a batch.
type BatchItem struct {
	Name      string
	Structure molecule.Structure
}

// BatchResult pairs a batch item with its outcome.
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// AnalyzeBatch analyzes independent structures concurrently on a pool of
// workers. Results are in item order; per-item failures are reported in
// BatchResult.Err. The returned error is set only when the batch itself
// could not run to completion, such as when ctx is cancelled.
func AnalyzeBatch(ctx context.Context, items []BatchItem, p Params, workers int, opts ...Option) ([]BatchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(items))
	for i, item := range items {
		results[i].Name = item.Name
	}

	// the pool logs through the same logger as the analyzers
	probe := &Analyzer{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(probe)
	}

	err := parallel.ForEach(ctx, workers, len(items), probe.logger, func(ctx context.Context, i int) error {
		a, err := New(items[i].Structure, append(slices.Clip(opts), WithName(items[i].Name))...)
		if err != nil {
			results[i].Err = err
			return nil
		}
		results[i].Result, results[i].Err = a.Analyze(ctx, p)
		return nil
	})
	return results, err
}
