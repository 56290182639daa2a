package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/turing/field"
)

// FieldStats summarises the concentration field at one instant.
type FieldStats struct {
	MeanU float64 `csv:"mean_u"`
	MeanV float64 `csv:"mean_v"`
	StdV  float64 `csv:"std_v"`
	MinV  float64 `csv:"min_v"`
	MaxV  float64 `csv:"max_v"`
	P10V  float64 `csv:"p10_v"`
	P50V  float64 `csv:"p50_v"`
	P90V  float64 `csv:"p90_v"`

	// Fraction of cells with V above the coverage threshold
	Coverage float64 `csv:"coverage"`
}

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`
	Steps           uint64 `csv:"steps"`

	// Parameters in effect at window end
	Feed    float64 `csv:"feed"`
	Kill    float64 `csv:"kill"`
	Stencil string  `csv:"stencil"`

	FieldStats

	// Mean absolute change in V across the window; near zero once the
	// pattern has settled.
	Activity float64 `csv:"activity"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats summarises f. scratch is reused for the channel
// copies when large enough; the returned slice holds the V channel sorted.
func ComputeFieldStats(f *field.Field, coverageThreshold float64, scratch []float64) (FieldStats, []float64) {
	u := f.Channel(0, scratch)
	meanU := stat.Mean(u, nil)

	v := f.Channel(1, u)
	if len(v) == 0 {
		return FieldStats{}, v
	}
	meanV, stdV := stat.PopMeanStdDev(v, nil)

	covered := 0
	for _, x := range v {
		if x > coverageThreshold {
			covered++
		}
	}

	s := FieldStats{
		MeanU:    meanU,
		MeanV:    meanV,
		StdV:     stdV,
		MinV:     floats.Min(v),
		MaxV:     floats.Max(v),
		Coverage: float64(covered) / float64(len(v)),
	}

	sort.Float64s(v)
	s.P10V = Percentile(v, 0.10)
	s.P50V = Percentile(v, 0.50)
	s.P90V = Percentile(v, 0.90)
	return s, v
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Uint64("steps", s.Steps),
		slog.Float64("feed", s.Feed),
		slog.Float64("kill", s.Kill),
		slog.String("stencil", s.Stencil),
		slog.Float64("mean_u", s.MeanU),
		slog.Float64("mean_v", s.MeanV),
		slog.Float64("std_v", s.StdV),
		slog.Float64("p50_v", s.P50V),
		slog.Float64("coverage", s.Coverage),
		slog.Float64("activity", s.Activity),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"steps", s.Steps,
		"feed", s.Feed,
		"kill", s.Kill,
		"stencil", s.Stencil,
		"mean_u", s.MeanU,
		"mean_v", s.MeanV,
		"std_v", s.StdV,
		"min_v", s.MinV,
		"max_v", s.MaxV,
		"p10_v", s.P10V,
		"p50_v", s.P50V,
		"p90_v", s.P90V,
		"coverage", s.Coverage,
		"activity", s.Activity,
	)
}
