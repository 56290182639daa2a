package main

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/pthm-cable/turing/config"
	"github.com/pthm-cable/turing/engine"
	"github.com/pthm-cable/turing/telemetry"
)

// Result is one evaluated parameter point, averaged over seeds.
type Result struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Feed     float64 `csv:"feed"`
	Kill     float64 `csv:"kill"`
	DiffuseV float64 `csv:"diffuse_v"`
	Quality  float64 `csv:"quality"`
	MeanV    float64 `csv:"mean_v"`
	StdV     float64 `csv:"std_v"`
	Coverage float64 `csv:"coverage"`
	Activity float64 `csv:"activity"`
}

// Evaluator runs headless simulations and scores the resulting pattern.
type Evaluator struct {
	params         *ParamVector
	ticks          uint64
	seeds          []int64
	baseConfig     *config.Config
	targetCoverage float64

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestValues  []float64
	bestFrame   *image.RGBA
	evals       int
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(params *ParamVector, ticks uint64, seeds []int64, baseCfg *config.Config, targetCoverage float64) *Evaluator {
	return &Evaluator{
		params:         params,
		ticks:          ticks,
		seeds:          seeds,
		baseConfig:     baseCfg,
		targetCoverage: targetCoverage,
		bestFitness:    math.Inf(1),
	}
}

// runResult holds the results from a single simulation run.
type runResult struct {
	stats telemetry.WindowStats
	frame *image.RGBA
	err   error
}

// Evaluate runs every seed in parallel for values and returns the averaged
// result. Lower fitness is better.
func (fe *Evaluator) Evaluate(values []float64) Result {
	values = fe.params.Clamp(values)

	runs := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			runs[idx] = fe.runSimulation(values, s)
		}(i, seed)
	}
	wg.Wait()

	res := Result{
		Feed:     values[idxFeed],
		Kill:     values[idxKill],
		DiffuseV: values[idxDiffuseV],
	}
	var ok int
	var bestRun *runResult
	bestQuality := -1.0
	for i := range runs {
		r := &runs[i]
		if r.err != nil {
			continue
		}
		q := Quality(r.stats, fe.targetCoverage)
		res.Quality += q
		res.MeanV += r.stats.MeanV
		res.StdV += r.stats.StdV
		res.Coverage += r.stats.Coverage
		res.Activity += r.stats.Activity
		if q > bestQuality {
			bestQuality, bestRun = q, r
		}
		ok++
	}
	if ok > 0 {
		n := float64(ok)
		res.Quality /= n
		res.MeanV /= n
		res.StdV /= n
		res.Coverage /= n
		res.Activity /= n
	}
	res.Fitness = -res.Quality

	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.evals++
	res.Eval = fe.evals
	if bestRun != nil && res.Fitness < fe.bestFitness {
		fe.bestFitness = res.Fitness
		fe.bestValues = values
		fe.bestFrame = bestRun.frame
	}
	return res
}

// Best returns the best values seen so far and the frame of their best seed.
func (fe *Evaluator) Best() (values []float64, fitness float64, frame *image.RGBA) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestValues, fe.bestFitness, fe.bestFrame
}

// configFor returns a finalized copy of the base config with values applied.
func (fe *Evaluator) configFor(values []float64, seed int64) (*config.Config, error) {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, values)
	cfg.Seed.RNGSeed = seed
	cfg.Simulation.MapMode = false
	// Seeds already run in parallel
	cfg.Simulation.Workers = 1
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runSimulation runs one seed from random blobs and returns the stats of the
// whole run plus the final frame.
func (fe *Evaluator) runSimulation(values []float64, seed int64) runResult {
	cfg, err := fe.configFor(values, seed)
	if err != nil {
		return runResult{err: err}
	}
	e, err := engine.New(cfg)
	if err != nil {
		return runResult{err: fmt.Errorf("seed %d: %w", seed, err)}
	}
	defer e.Close()

	e.ClearField()
	e.AddRandomBlobs()

	collector := telemetry.NewCollector(int(fe.ticks), cfg.Telemetry.CoverageThreshold)
	collector.Observe(0, 0, e.SimParams(), e.Field())
	for e.Ticks() < fe.ticks {
		e.Advance()
	}
	stats := collector.Flush(e.Ticks(), e.Steps(), e.SimParams(), e.Field())

	return runResult{stats: stats, frame: e.Render()}
}

// Quality scores how pattern-like a field is: spatial variation in V,
// weighted by how close coverage is to target. A field that decayed to the
// trivial state or filled uniformly scores zero.
func Quality(s telemetry.WindowStats, targetCoverage float64) float64 {
	if s.MaxV-s.MinV < 1e-3 {
		return 0
	}
	closeness := 1 - math.Abs(s.Coverage-targetCoverage)
	if closeness < 0 {
		closeness = 0
	}
	return s.StdV * closeness
}
