package main

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/turing/config"
)

// ParamSpec is one searchable simulation parameter.
type ParamSpec struct {
	Name    string  // CSV/log name
	Path    string  // Config path it writes
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
}

// ParamVector is the search space: an ordered list of specs. Value slices
// passed to its methods use the same order.
type ParamVector struct {
	Specs []ParamSpec

	lo, span []float64
}

const (
	idxFeed = iota
	idxKill
	idxDiffuseV
)

// NewParamVector builds the (F, k, Dv) space. F and k bounds follow the
// parameter map so every point is one the map view can show.
func NewParamVector(base *config.Config) *ParamVector {
	pm := base.ParameterMap
	pv := &ParamVector{
		Specs: []ParamSpec{
			{Name: "feed", Path: "simulation.feed_rate", Min: pm.FeedMin, Max: pm.FeedMax, Default: base.Simulation.FeedRate},
			{Name: "kill", Path: "simulation.kill_rate", Min: pm.KillMin, Max: pm.KillMax, Default: base.Simulation.KillRate},
			{Name: "diffuse_v", Path: "simulation.diffuse_v", Min: 0.3, Max: 0.7, Default: base.Simulation.DiffuseV},
		},
	}
	pv.lo = make([]float64, len(pv.Specs))
	pv.span = make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		pv.lo[i] = s.Min
		pv.span[i] = s.Max - s.Min
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the starting values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		v[i] = s.Default
	}
	return v
}

// Normalize maps raw values onto [0, 1] per parameter.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := floats.SubTo(make([]float64, len(raw)), raw, pv.lo)
	floats.Div(out, pv.span)
	return out
}

// Denormalize is the inverse of Normalize.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	out := floats.MulTo(make([]float64, len(unit)), unit, pv.span)
	floats.Add(out, pv.lo)
	return out
}

// Clamp returns a copy of v with every value inside its bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = max(s.Min, min(v[i], s.Max))
	}
	return out
}

// ApplyToConfig writes clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)
	cfg.Simulation.FeedRate = v[idxFeed]
	cfg.Simulation.KillRate = v[idxKill]
	cfg.Simulation.DiffuseV = v[idxDiffuseV]
}

// ExtractFromConfig reads the current values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{cfg.Simulation.FeedRate, cfg.Simulation.KillRate, cfg.Simulation.DiffuseV}
}
