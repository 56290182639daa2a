package systems

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/turing/field"
)

// ParamMap is the feed/kill range swept across the grid in map mode.
// Kill varies along x and feed along y.
type ParamMap struct {
	KillMin, KillMax float32
	FeedMin, FeedMax float32
}

// DefaultParamMap covers the region of the Gray-Scott phase diagram
// where most pattern families live.
func DefaultParamMap() ParamMap {
	return ParamMap{KillMin: 0.045, KillMax: 0.070, FeedMin: 0.010, FeedMax: 0.100}
}

// Params is an immutable snapshot of the simulation settings for one pass.
type Params struct {
	Feed     float32
	Kill     float32
	DiffuseU float32
	DiffuseV float32
	DT       float32
	Noise    float32

	Stencil  Stencil
	Boundary field.Boundary

	MapMode bool
	Map     ParamMap

	StepsPerFrame int
}

// DefaultParams returns the coral-growth settings the simulation starts with.
func DefaultParams() Params {
	return Params{
		Feed:          0.055,
		Kill:          0.062,
		DiffuseU:      1.0,
		DiffuseV:      0.5,
		DT:            1.0,
		Stencil:       NinePoint,
		Boundary:      field.Reflect,
		Map:           DefaultParamMap(),
		StepsPerFrame: 8,
	}
}

// StepCell advances one cell by a forward Euler step of the Gray-Scott
// equations. noise is the cell's perturbation in [-0.5, 0.5) and is scaled
// by p.Noise. The result is clamped to [0, 1].
func StepCell(u, v, lu, lv, feed, kill, noise float32, p *Params) (float32, float32) {
	r := u * v * v
	du := p.DiffuseU*lu - r + feed*(1-u)
	dv := p.DiffuseV*lv + r - (feed+kill)*v

	u += du * p.DT
	v += dv * p.DT

	if p.Noise > 0 {
		u += noise * p.Noise
		v += noise * p.Noise * 0.5
	}

	return clamp01(u), clamp01(v)
}

// Stepper runs full-grid reaction-diffusion passes.
type Stepper struct {
	pool *Pool

	// Map mode lookup tables, rebuilt when the grid or range changes.
	killByX []float64
	feedByY []float64
	tableW  int
	tableH  int
	tableOf ParamMap
}

// NewStepper creates a stepper that dispatches rows on pool.
// A nil pool runs single-threaded.
func NewStepper(pool *Pool) *Stepper {
	return &Stepper{pool: pool}
}

// Step reads src and writes the next state into dst. src and dst must be
// distinct fields of the same size.
func (s *Stepper) Step(src, dst *field.Field, p *Params) {
	if p.MapMode {
		s.buildTables(src.W, src.H, p.Map)
	}
	pp := *p
	s.pool.Run(src.H, func(y0, y1 int) {
		s.stepRows(src, dst, &pp, y0, y1)
	})
}

func (s *Stepper) stepRows(src, dst *field.Field, p *Params, y0, y1 int) {
	feed, kill := p.Feed, p.Kill
	for y := y0; y < y1; y++ {
		if p.MapMode {
			feed = float32(s.feedByY[y])
		}
		for x := 0; x < src.W; x++ {
			if p.MapMode {
				kill = float32(s.killByX[x])
			}
			u, v := src.At(x, y)
			lu, lv := Laplacian(src, x, y, p.Stencil, p.Boundary)
			var n float32
			if p.Noise > 0 {
				n = cellNoise(x, y)
			}
			nu, nv := StepCell(u, v, lu, lv, feed, kill, n, p)
			dst.Set(x, y, nu, nv)
		}
	}
}

// MapParams returns the feed and kill rates map mode assigns to cell (x, y).
func (s *Stepper) MapParams(x, y, w, h int, m ParamMap) (feed, kill float32) {
	s.buildTables(w, h, m)
	return float32(s.feedByY[y]), float32(s.killByX[x])
}

func (s *Stepper) buildTables(w, h int, m ParamMap) {
	if s.tableW == w && s.tableH == h && s.tableOf == m {
		return
	}
	s.killByX = spanTable(s.killByX, w, m.KillMin, m.KillMax)
	s.feedByY = spanTable(s.feedByY, h, m.FeedMin, m.FeedMax)
	s.tableW, s.tableH, s.tableOf = w, h, m
}

// spanTable fills n entries with lo + i/n*(hi-lo), so index 0 is exactly lo
// and the last entry approaches hi without reaching it.
func spanTable(dst []float64, n int, lo, hi float32) []float64 {
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	l, h := float64(lo), float64(hi)
	if n == 1 {
		dst[0] = l
		return dst
	}
	return floats.Span(dst, l, h-(h-l)/float64(n))
}
