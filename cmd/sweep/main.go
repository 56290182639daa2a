// Package main searches feed/kill space for parameter sets that produce
// stable patterns, either on a regular grid or with CMA-ES.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/turing/config"
	"github.com/pthm-cable/turing/recorder"
	"github.com/pthm-cable/turing/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	mode := flag.String("mode", "grid", "Search mode: grid or cmaes")
	ticks := flag.Uint64("ticks", 500, "Frames to simulate per run")
	seeds := flag.Int("seeds", 2, "Number of seeds per evaluation")
	feedSteps := flag.Int("feed-steps", 10, "Grid mode: feed samples")
	killSteps := flag.Int("kill-steps", 10, "Grid mode: kill samples")
	maxEvals := flag.Int("max-evals", 100, "CMA-ES mode: maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	target := flag.Float64("target-coverage", 0.3, "Coverage the quality score rewards")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewEvaluator(params, *ticks, evalSeeds, baseCfg, *target)

	logPath := filepath.Join(*outputDir, "sweep.csv")
	out, err := telemetry.CreateCSV(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer out.Close()

	startTime := time.Now()
	report := func(r Result, total int) {
		if err := out.Write([]Result{r}); err != nil {
			log.Printf("failed to write result: %v", err)
		}
		elapsed := time.Since(startTime)
		remaining := time.Duration(total-r.Eval) * (elapsed / time.Duration(r.Eval))
		fmt.Printf("Eval %d/%d: F=%.4f k=%.4f Dv=%.3f quality=%.4f coverage=%.2f | elapsed: %s, ETA: %s\n",
			r.Eval, total, r.Feed, r.Kill, r.DiffuseV, r.Quality, r.Coverage,
			formatDuration(elapsed), formatDuration(remaining))
	}

	switch *mode {
	case "grid":
		runGrid(evaluator, params, baseCfg, *feedSteps, *killSteps, report)
	case "cmaes":
		runCMAES(evaluator, params, *maxEvals, *population, report)
	default:
		log.Fatalf("unknown mode %q (want grid or cmaes)", *mode)
	}

	best, fitness, frame := evaluator.Best()
	if best == nil {
		log.Fatal("no successful evaluations")
	}

	fmt.Printf("\nSearch complete in %s\n", formatDuration(time.Since(startTime)))
	fmt.Printf("Best quality: %.4f\n", -fitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, best[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, best)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}

	if frame != nil {
		pngPath := filepath.Join(*outputDir, "best.png")
		if err := recorder.SavePNG(pngPath, frame); err != nil {
			log.Printf("failed to write best frame: %v", err)
		} else {
			fmt.Printf("Best frame saved to: %s\n", pngPath)
		}
	}
}

// gridPoints returns n evenly spaced values covering [lo, hi].
func gridPoints(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{(lo + hi) / 2}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// runGrid evaluates every (feed, kill) pair on a regular grid, holding the
// other parameters at their configured values.
func runGrid(fe *Evaluator, params *ParamVector, base *config.Config, feedSteps, killSteps int, report func(Result, int)) {
	feedSpec, killSpec := params.Specs[idxFeed], params.Specs[idxKill]
	feeds := gridPoints(feedSpec.Min, feedSpec.Max, feedSteps)
	kills := gridPoints(killSpec.Min, killSpec.Max, killSteps)
	total := len(feeds) * len(kills)

	fmt.Printf("Starting grid sweep: %d feed x %d kill = %d evaluations\n", len(feeds), len(kills), total)

	values := params.ExtractFromConfig(base)
	for _, f := range feeds {
		for _, k := range kills {
			values[idxFeed], values[idxKill] = f, k
			report(fe.Evaluate(values), total)
		}
	}
}

// runCMAES minimizes fitness over the normalized parameter space.
func runCMAES(fe *Evaluator, params *ParamVector, maxEvals, population int, report func(Result, int)) {
	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			r := fe.Evaluate(params.Denormalize(x))
			report(r, maxEvals)
			return r.Fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}

	popSize := population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, maxEvals)

	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}
}
