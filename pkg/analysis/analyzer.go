// Package analysis runs the full small-ring pipeline over one structure:
// ring search, orientation, linkage search and pucker classification. It
// adds parameter validation, a per-structure result cache, cancellation,
// logging and metrics around the core searches.
package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-paperchain/pkg/linkage"
	"github.com/dd0wney/cluso-paperchain/pkg/logging"
	"github.com/dd0wney/cluso-paperchain/pkg/metrics"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/pucker"
	"github.com/dd0wney/cluso-paperchain/pkg/rings"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithMetrics records analysis metrics in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(a *Analyzer) { a.metrics = r }
}

// WithProgress receives every yield point of the searches.
func WithProgress(fn func(rings.Progress)) Option {
	return func(a *Analyzer) { a.progress = fn }
}

// WithRingLimit overrides the ring safety cap.
func WithRingLimit(n int) Option {
	return func(a *Analyzer) { a.ringLimit = n }
}

// WithName sets the molecule name carried on results.
func WithName(name string) Option {
	return func(a *Analyzer) { a.name = name }
}

// topology is the cached outcome of the ring and linkage searches.
type topology struct {
	rings      []rings.SmallRing
	registry   *linkage.Registry
	backEdges  int
	ringCap    int
	orientated int
	truncated  bool
}

// Analyzer analyzes one structure. Ring and linkage results are cached per
// parameter set; pucker classification reads the current coordinates on
// every call. An Analyzer is safe for concurrent use.
type Analyzer struct {
	structure molecule.Structure
	name      string
	logger    logging.Logger
	metrics   *metrics.Registry
	progress  func(rings.Progress)
	ringLimit int

	mu    sync.Mutex
	cache map[cacheKey]*topology
}

// New validates the structure's bond graph and returns an Analyzer for it.
func New(s molecule.Structure, opts ...Option) (*Analyzer, error) {
	if s == nil {
		return nil, ErrNilStructure
	}
	if err := molecule.Validate(s); err != nil {
		return nil, err
	}

	a := &Analyzer{
		structure: s,
		logger:    logging.NewNopLogger(),
		cache:     make(map[cacheKey]*topology),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.name == "" {
		if m, ok := s.(*molecule.Molecule); ok {
			a.name = m.Name
		}
	}
	return a, nil
}

// Invalidate drops cached ring and linkage results. Call it after the
// structure's bonds change.
func (a *Analyzer) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.cache)
}

// Analyze runs the pipeline with the given parameters. When ctx is
// cancelled the partial result is returned, flagged Cancelled, together
// with ctx.Err(). Cancelled searches are never cached.
func (a *Analyzer) Analyze(ctx context.Context, p Params) (*Result, error) {
	start := time.Now()
	if err := p.Validate(); err != nil {
		a.recordAnalysis(metrics.StatusError, start)
		return nil, err
	}
	if a.metrics != nil {
		defer a.metrics.TrackInFlight()()
	}

	res := &Result{
		ID:        uuid.New().String(),
		Molecule:  a.name,
		Params:    p,
		Durations: make(map[string]time.Duration),
	}
	log := a.logger.With(logging.AnalysisID(res.ID), logging.Molecule(a.name))
	checkpoint := a.checkpoint(ctx)

	topo, cached, err := a.topology(p, checkpoint, log, res)
	if err != nil {
		a.recordAnalysis(metrics.StatusError, start)
		return nil, err
	}
	res.Cached = cached
	res.Rings = make([]rings.SmallRing, len(topo.rings))
	for i := range topo.rings {
		res.Rings[i] = topo.rings[i].Copy()
	}
	res.Linkages = topo.registry
	res.BackEdges = topo.backEdges
	res.RingCap = topo.ringCap
	res.Orientated = topo.orientated
	res.Truncated = topo.truncated

	if !res.Cancelled {
		res.Cancelled = !a.classify(res, checkpoint, log)
	}

	status := metrics.StatusOK
	switch {
	case res.Cancelled:
		status = metrics.StatusCancelled
		log.Info("analysis cancelled",
			logging.Int("rings", len(res.Rings)),
			logging.Int("puckers", len(res.Puckers)))
	case res.Truncated:
		status = metrics.StatusTruncated
	case res.Cached:
		status = metrics.StatusCached
	}
	a.recordAnalysis(status, start)
	res.Durations["total"] = time.Since(start)

	if res.Cancelled {
		return res, ctx.Err()
	}
	log.Debug("analysis complete",
		logging.Int("rings", len(res.Rings)),
		logging.Int("linkages", res.Linkages.Len()),
		logging.Latency(res.Durations["total"]))
	return res, nil
}

// checkpoint adapts ctx and the progress callback to the searches' yield
// points.
func (a *Analyzer) checkpoint(ctx context.Context) rings.Checkpoint {
	return func(p rings.Progress) bool {
		if a.progress != nil {
			a.progress(p)
		}
		return ctx.Err() == nil
	}
}

// topology returns the ring and linkage results for p, from the cache
// when possible. Cancellation is reported through res.Cancelled.
func (a *Analyzer) topology(p Params, checkpoint rings.Checkpoint, log logging.Logger, res *Result) (*topology, bool, error) {
	a.mu.Lock()
	cached, ok := a.cache[p.key()]
	a.mu.Unlock()
	if a.metrics != nil {
		a.metrics.RecordCacheLookup(ok)
	}
	if ok {
		log.Debug("reusing cached rings and linkages",
			logging.Int("max_ring_size", p.MaxRingSize),
			logging.Int("max_path_length", p.MaxPathLength))
		return cached, true, nil
	}

	topo := &topology{registry: linkage.NewRegistry()}

	timer := logging.StartTimer(log, "ring search", logging.Stage(rings.StageRings))
	enum := rings.Enumerator{MaxRingSize: p.MaxRingSize, Limit: a.ringLimit, Checkpoint: checkpoint}
	found, err := enum.Enumerate(a.structure)
	if err != nil {
		timer.EndError(err)
		return nil, false, fmt.Errorf("ring search: %w", err)
	}
	a.recordStage(res, rings.StageRings, timer.End(logging.Count(len(found.Rings))))

	topo.rings = found.Rings
	topo.backEdges = found.BackEdges
	topo.ringCap = found.Cap
	topo.truncated = found.Truncated
	topo.orientated = rings.OrientAll(a.structure, topo.rings)

	if found.Truncated {
		log.Warn("ring search stopped at safety cap",
			logging.Int("cap", found.Cap),
			logging.Int("back_edges", found.BackEdges))
	}
	if a.metrics != nil {
		sizes := make([]int, len(found.Rings))
		for i := range found.Rings {
			sizes[i] = found.Rings[i].Len()
		}
		a.metrics.RecordRingSearch(sizes, found.BackEdges, found.Truncated)
		a.metrics.RecordOrientation(topo.orientated)
	}
	if found.Cancelled {
		res.Cancelled = true
		return topo, false, nil
	}

	timer = logging.StartTimer(log, "linkage search", logging.Stage(rings.StageLinkages))
	finder := linkage.Finder{MaxPathLength: p.MaxPathLength, Checkpoint: checkpoint}
	links, err := finder.Find(a.structure, topo.rings)
	if err != nil {
		timer.EndError(err)
		return nil, false, fmt.Errorf("linkage search: %w", err)
	}
	a.recordStage(res, rings.StageLinkages, timer.End(logging.Count(links.Registry.Len())))
	topo.registry = links.Registry
	if a.metrics != nil {
		a.metrics.RecordLinkages(links.Registry.Len())
	}
	if links.Cancelled {
		res.Cancelled = true
		return topo, false, nil
	}

	a.mu.Lock()
	a.cache[p.key()] = topo
	a.mu.Unlock()
	return topo, false, nil
}

// classify computes both pucker classifications for each ring. It returns
// false when the checkpoint stopped it.
func (a *Analyzer) classify(res *Result, checkpoint rings.Checkpoint, log logging.Logger) bool {
	timer := logging.StartTimer(log, "pucker classification", logging.Stage(rings.StagePucker))
	defer func() {
		a.recordStage(res, rings.StagePucker, timer.End(logging.Count(len(res.Puckers))))
	}()

	res.Puckers = make([]RingPucker, 0, len(res.Rings))
	for i := range res.Rings {
		atoms := res.Rings[i].Atoms
		rp := RingPucker{
			HillReilly:  pucker.ClassifyHillReilly(a.structure, atoms),
			CremerPople: pucker.ClassifyCremerPople(a.structure, atoms),
		}
		res.Puckers = append(res.Puckers, rp)
		c := rp.Selected(res.Params.Method)
		if !c.Confident {
			log.Debug("pucker outside reference band", logging.RingID(i), logging.String("family", c.Family.String()))
		}
		if a.metrics != nil {
			a.metrics.RecordPucker(c.Method.String(), c.Family.String(), c.Confident)
		}
		if !checkpoint.Proceed(rings.Progress{Stage: rings.StagePucker, Done: i + 1, Total: len(res.Rings), Found: i + 1}) {
			return false
		}
	}
	return true
}

func (a *Analyzer) recordStage(res *Result, stage string, d time.Duration) {
	res.Durations[stage] = d
	if a.metrics != nil {
		a.metrics.RecordStage(stage, d)
	}
}

func (a *Analyzer) recordAnalysis(status string, start time.Time) {
	if a.metrics != nil {
		a.metrics.RecordAnalysis(status, time.Since(start))
	}
}
