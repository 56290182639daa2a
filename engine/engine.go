// Package engine is the simulation facade used by the viewer, the headless
// tools and tests. It owns the field buffers, the parameter snapshots and
// the output frame, and sequences paint, step and render passes.
package engine

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/turing/camera"
	"github.com/pthm-cable/turing/config"
	"github.com/pthm-cable/turing/field"
	"github.com/pthm-cable/turing/renderer"
	"github.com/pthm-cable/turing/systems"
)

// Engine runs one reaction-diffusion simulation. It is not safe for
// concurrent use; a single goroutine drives it, and the worker pool only
// parallelises within a pass.
type Engine struct {
	buffers *field.Buffers
	pool    *systems.Pool

	stepper    *systems.Stepper
	compositor *renderer.Compositor

	sim      systems.Params
	render   renderer.Params
	gradient renderer.Gradient

	seedRadius  float32
	blobs       systems.BlobParams
	paintRadius int
	rng         *rand.Rand

	frame  *image.RGBA
	paused bool
	steps  uint64
	ticks  uint64
}

// New allocates the field buffers and seeds the initial condition.
// It fails with config.ErrInvalid when cfg holds out-of-range values, and
// with field.ErrInvalidDimensions or field.ErrGridTooLarge when the
// grid cannot be allocated.
func New(cfg *config.Config) (*Engine, error) {
	// Finalize rather than Validate so edits made after Load are reflected
	// in the derived stencil, boundary and output size.
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	buffers, err := field.NewBuffers(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.MaxCells)
	if err != nil {
		return nil, fmt.Errorf("allocating field: %w", err)
	}

	outW, outH := cfg.Derived.OutputW, cfg.Derived.OutputH
	if outW <= 0 || outH <= 0 {
		outW, outH = cfg.Grid.Width, cfg.Grid.Height
	}
	if err := field.CheckSize(outW, outH, cfg.Grid.MaxCells); err != nil {
		return nil, fmt.Errorf("allocating frame: %w", err)
	}

	gradient, truncated := gradientFromConfig(cfg.Gradient)
	if truncated {
		slog.Warn("default gradient truncated", "stops", len(cfg.Gradient), "max", renderer.MaxStops)
	}

	seed := cfg.Seed.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pool := systems.NewPool(cfg.Simulation.Workers)
	e := &Engine{
		buffers:    buffers,
		pool:       pool,
		stepper:    systems.NewStepper(pool),
		compositor: renderer.NewCompositor(pool, lightingFromConfig(cfg.Relief)),
		sim:        simParamsFromConfig(cfg),
		render: renderer.Params{
			Palette:  cfg.Render.Palette,
			Relief:   cfg.Render.Relief,
			Boundary: cfg.Derived.Boundary,
			View: camera.View{
				Zoom: float32(cfg.Render.Zoom),
				PanX: float32(cfg.Render.PanX),
				PanY: float32(cfg.Render.PanY),
			}.Clamped(),
		},
		gradient:   gradient,
		seedRadius: float32(cfg.Seed.Radius),
		blobs: systems.BlobParams{
			Count:     cfg.Seed.BlobCount,
			RadiusMin: float32(cfg.Seed.BlobRadiusMin),
			RadiusMax: float32(cfg.Seed.BlobRadiusMax),
		},
		paintRadius: cfg.Paint.Radius,
		rng:         rand.New(rand.NewSource(seed)),
		frame:       image.NewRGBA(image.Rect(0, 0, outW, outH)),
	}
	if err := renderer.ValidatePalette(e.render.Palette); err != nil {
		return nil, err
	}

	e.Reset()
	return e, nil
}

func simParamsFromConfig(cfg *config.Config) systems.Params {
	s := cfg.Simulation
	pm := cfg.ParameterMap
	return systems.Params{
		Feed:     float32(s.FeedRate),
		Kill:     float32(s.KillRate),
		DiffuseU: float32(s.DiffuseU),
		DiffuseV: float32(s.DiffuseV),
		DT:       float32(s.DeltaTime),
		Noise:    float32(s.NoiseStrength),
		Stencil:  cfg.Derived.Stencil,
		Boundary: cfg.Derived.Boundary,
		MapMode:  s.MapMode,
		Map: systems.ParamMap{
			KillMin: float32(pm.KillMin),
			KillMax: float32(pm.KillMax),
			FeedMin: float32(pm.FeedMin),
			FeedMax: float32(pm.FeedMax),
		},
		StepsPerFrame: s.StepsPerFrame,
	}
}

func lightingFromConfig(r config.ReliefConfig) renderer.Lighting {
	return renderer.Lighting{
		Ambient:      float32(r.Ambient),
		KeyWeight:    float32(r.KeyWeight),
		RimWeight:    float32(r.RimWeight),
		SpecExponent: float32(r.SpecExponent),
		SpecScale:    float32(r.SpecScale),
		Strength:     float32(r.Strength),
		BorderMargin: r.BorderMargin,
	}
}

func gradientFromConfig(stops []config.GradientStop) (renderer.Gradient, bool) {
	if len(stops) == 0 {
		return renderer.DefaultGradient(), false
	}
	out := make([]renderer.Stop, len(stops))
	for i, s := range stops {
		out[i] = renderer.Stop{
			Pos:   float32(s.Pos),
			Color: renderer.RGB{R: float32(s.Color[0]), G: float32(s.Color[1]), B: float32(s.Color[2])},
		}
	}
	return renderer.NewGradient(out...)
}

// Close stops the worker pool.
func (e *Engine) Close() {
	e.pool.Close()
}

// StepOnce advances the simulation by one time increment and swaps the
// buffers. It runs even while paused.
func (e *Engine) StepOnce() {
	e.stepper.Step(e.buffers.Front(), e.buffers.Back(), &e.sim)
	e.buffers.Swap()
	e.steps++
}

// Tick runs one animation frame: StepsPerFrame steps unless paused, then a
// render. It returns the new frame.
func (e *Engine) Tick() *image.RGBA {
	e.Advance()
	return e.Render()
}

// Advance runs the stepping half of Tick without rendering.
func (e *Engine) Advance() {
	if !e.paused {
		for i := 0; i < e.sim.StepsPerFrame; i++ {
			e.StepOnce()
		}
	}
	e.ticks++
}

// Render composes the current field into the frame and returns it.
// The returned image is reused by the next Render.
func (e *Engine) Render() *image.RGBA {
	e.compositor.Render(e.buffers.Front(), e.gradient, e.render, e.frame)
	return e.frame
}

// Frame returns the most recently rendered image.
func (e *Engine) Frame() *image.RGBA { return e.frame }

// Field returns the current readable field. Callers must not modify it.
func (e *Engine) Field() *field.Field { return e.buffers.Front() }

// Size returns the grid dimensions.
func (e *Engine) Size() (w, h int) { return e.buffers.Size() }

// Steps returns the number of steps run since creation.
func (e *Engine) Steps() uint64 { return e.steps }

// Ticks returns the number of Tick calls since creation.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Paused reports whether Tick skips stepping.
func (e *Engine) Paused() bool { return e.paused }

// SetPaused pauses or resumes Tick.
func (e *Engine) SetPaused(p bool) { e.paused = p }

// SimParams returns a copy of the simulation parameters.
func (e *Engine) SimParams() systems.Params { return e.sim }

// RenderParams returns a copy of the render parameters.
func (e *Engine) RenderParams() renderer.Params { return e.render }

// Gradient returns the user gradient.
func (e *Engine) Gradient() renderer.Gradient { return e.gradient }

// Reset reinitialises the field to the resting state with a seeded disc
// of V at the centre.
func (e *Engine) Reset() {
	systems.SeedCenter(e.buffers.Front(), e.seedRadius)
	e.buffers.Back().CopyFrom(e.buffers.Front())
}

// ClearField returns every cell to U=1, V=0.
func (e *Engine) ClearField() {
	systems.Clear(e.buffers.Front())
	e.buffers.Back().CopyFrom(e.buffers.Front())
}

// AddRandomBlobs replaces the field with the resting state plus randomly
// placed discs of V.
func (e *Engine) AddRandomBlobs() {
	systems.RandomBlobs(e.buffers.Front(), e.rng, e.blobs)
	e.buffers.Back().CopyFrom(e.buffers.Front())
}

// Paint applies the brush at a normalized field coordinate. Under wrap the
// coordinate and the brush disc fold toroidally; otherwise a point outside
// [0, 1) is ignored and the disc is clipped at the edge. It reports whether
// the field changed.
func (e *Engine) Paint(x, y float32, mode systems.BrushMode) bool {
	if e.sim.Boundary == field.Wrap {
		x, y = camera.Wrap(x), camera.Wrap(y)
	}
	if !(x >= 0 && x < 1 && y >= 0 && y < 1) {
		return false
	}
	w, h := e.buffers.Size()
	req := systems.PaintRequest{
		X:        min(int(x*float32(w)), w-1),
		Y:        min(int(y*float32(h)), h-1),
		Mode:     mode,
		Radius:   e.paintRadius,
		Boundary: e.sim.Boundary,
	}
	systems.Paint(e.buffers.Front(), e.buffers.Back(), req)
	e.buffers.Swap()
	return true
}

// PaintScreen applies the brush at a normalized screen coordinate, mapping
// it through the current zoom and pan first.
func (e *Engine) PaintScreen(sx, sy float32, mode systems.BrushMode) bool {
	fx, fy := e.render.View.ScreenToField(sx, sy)
	return e.Paint(fx, fy, mode)
}

// SetGradient replaces the user gradient from parallel position and RGBA
// arrays. Input beyond the gradient capacity, or beyond the shorter of the
// two arrays, is dropped with a warning.
func (e *Engine) SetGradient(positions, colors []float32) {
	g, truncated := renderer.GradientFromFloats(positions, colors)
	if truncated {
		slog.Warn("gradient truncated",
			"positions", len(positions),
			"colors", len(colors)/4,
			"kept", g.Len(),
		)
	}
	e.gradient = g
}

// SetGradientStops replaces the user gradient.
func (e *Engine) SetGradientStops(stops ...renderer.Stop) {
	g, truncated := renderer.NewGradient(stops...)
	if truncated {
		slog.Warn("gradient truncated", "stops", len(stops), "kept", g.Len())
	}
	e.gradient = g
}

// ApplyPreset sets feed and kill together.
func (e *Engine) ApplyPreset(feed, kill float64) error {
	if err := checkRate(ParamFeed, feed); err != nil {
		return err
	}
	if err := checkRate(ParamKill, kill); err != nil {
		return err
	}
	e.sim.Feed = float32(feed)
	e.sim.Kill = float32(kill)
	return nil
}

// ApplyNamedPreset looks up a built-in preset and applies it.
func (e *Engine) ApplyNamedPreset(name string) error {
	p, ok := systems.LookupPreset(name)
	if !ok {
		return fmt.Errorf("%w: preset %q", ErrInvalidValue, name)
	}
	return e.ApplyPreset(float64(p.Feed), float64(p.Kill))
}

// SetPan sets both pan offsets, clamped to [-1, 1].
func (e *Engine) SetPan(x, y float64) error {
	if err := checkFinite(ParamPanX, x); err != nil {
		return err
	}
	if err := checkFinite(ParamPanY, y); err != nil {
		return err
	}
	e.render.View.PanX = camera.ClampPan(float32(x))
	e.render.View.PanY = camera.ClampPan(float32(y))
	return nil
}

// SetView replaces zoom and pan, clamping both.
func (e *Engine) SetView(v camera.View) {
	e.render.View = v.Clamped()
}
