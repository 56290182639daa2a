package ui

import (
	"fmt"
	"log/slog"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/turing/field"
	"github.com/pthm-cable/turing/renderer"
	"github.com/pthm-cable/turing/systems"
)

// Controller is the subset of the engine the control panel drives.
type Controller interface {
	SimParams() systems.Params
	RenderParams() renderer.Params
	SetParameter(name string, value float64) error
	Paused() bool
	SetPaused(paused bool)
	Reset()
	ClearField()
	AddRandomBlobs()
	ApplyNamedPreset(name string) error
}

// sliderSpec binds a slider to a named engine parameter.
type sliderSpec struct {
	Param    string
	Label    string
	Min, Max float32
	Integral bool
	Get      func(p systems.Params) float32
}

// Parameter names match engine.SetParameter.
var sliderSpecs = []sliderSpec{
	{Param: "feed_rate", Label: "Feed", Min: 0, Max: 0.1, Get: func(p systems.Params) float32 { return p.Feed }},
	{Param: "kill_rate", Label: "Kill", Min: 0, Max: 0.1, Get: func(p systems.Params) float32 { return p.Kill }},
	{Param: "diffuse_u", Label: "Diffuse U", Min: 0, Max: 1, Get: func(p systems.Params) float32 { return p.DiffuseU }},
	{Param: "diffuse_v", Label: "Diffuse V", Min: 0, Max: 1, Get: func(p systems.Params) float32 { return p.DiffuseV }},
	{Param: "delta_time", Label: "dt", Min: 0.05, Max: 1.5, Get: func(p systems.Params) float32 { return p.DT }},
	{Param: "noise_strength", Label: "Noise", Min: 0, Max: 0.5, Get: func(p systems.Params) float32 { return p.Noise }},
	{Param: "steps_per_frame", Label: "Steps", Min: 0, Max: 64, Integral: true, Get: func(p systems.Params) float32 { return float32(p.StepsPerFrame) }},
}

// ControlPanel renders the right-hand parameter panel.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlPanel creates a panel anchored at x with the given size.
func NewControlPanel(x, y, width, height int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
		visible:  true,
	}
}

// SetBounds moves and resizes the panel after a window resize.
func (c *ControlPanel) SetBounds(x, y, width, height int32) {
	c.x, c.y, c.width, c.height = x, y, width, height
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// Contains reports whether a screen point lies on the panel, so pointer
// input there is not treated as painting.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height)
}

// Draw renders the panel and applies any widget changes to ctrl.
// It returns the Y position below the last widget.
func (c *ControlPanel) Draw(ctrl Controller) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height)

	y := c.y + pad
	rl.DrawText("Reaction-Diffusion", c.x+pad, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	sim := ctrl.SimParams()
	y = r.DrawSectionHeader(c.x+pad, y, "Parameters")
	for _, spec := range sliderSpecs {
		y = c.drawSlider(ctrl, spec, sim, y)
	}

	y += 4
	y = r.DrawSectionHeader(c.x+pad, y, "Modes")
	y = c.drawModeButtons(ctrl, y)

	y += 4
	y = r.DrawSectionHeader(c.x+pad, y, "Field")
	y = c.drawFieldButtons(ctrl, y)

	y += 4
	y = r.DrawSectionHeader(c.x+pad, y, "Presets")
	return c.drawPresets(ctrl, y)
}

func (c *ControlPanel) drawSlider(ctrl Controller, spec sliderSpec, sim systems.Params, y int32) int32 {
	r := c.renderer
	pad := r.Theme.Padding
	old := spec.Get(sim)

	r.DrawLabelValue(c.x+pad, y, spec.Label, formatSlider(spec, old))
	y += r.Theme.LineHeight

	bounds := rl.Rectangle{
		X:      float32(c.x + pad),
		Y:      float32(y),
		Width:  float32(c.width - 2*pad),
		Height: r.Theme.WidgetHeight - 6,
	}
	value := gui.SliderBar(bounds, "", "", old, spec.Min, spec.Max)
	applySlider(ctrl, spec, old, value)

	return y + int32(r.Theme.WidgetHeight)
}

func (c *ControlPanel) drawModeButtons(ctrl Controller, y int32) int32 {
	sim := ctrl.SimParams()
	rp := ctrl.RenderParams()

	if c.button(0, y, "Stencil: "+sim.Stencil.String()) {
		c.set(ctrl, "stencil", float64(nextIndex(int(sim.Stencil), len(systems.Stencils()))))
	}
	if c.button(1, y, "Edge: "+sim.Boundary.String()) {
		c.set(ctrl, "boundary", float64(nextIndex(int(sim.Boundary), len(field.Boundaries()))))
	}
	y += int32(c.renderer.Theme.WidgetHeight) + 2

	if c.button(0, y, "Palette: "+renderer.PaletteName(rp.Palette)) {
		c.set(ctrl, "palette", float64(nextIndex(rp.Palette, renderer.NumPalettes())))
	}
	if c.button(1, y, toggleText(rp.Relief, "Relief: on", "Relief: off")) {
		c.set(ctrl, "relief", boolParam(!rp.Relief))
	}
	y += int32(c.renderer.Theme.WidgetHeight) + 2

	if c.button(0, y, toggleText(sim.MapMode, "Map: on", "Map: off")) {
		c.set(ctrl, "map_mode", boolParam(!sim.MapMode))
	}
	if c.button(1, y, toggleText(ctrl.Paused(), "Resume", "Pause")) {
		ctrl.SetPaused(!ctrl.Paused())
	}
	return y + int32(c.renderer.Theme.WidgetHeight) + 2
}

func (c *ControlPanel) drawFieldButtons(ctrl Controller, y int32) int32 {
	if c.button(0, y, "Reset") {
		ctrl.Reset()
	}
	if c.button(1, y, "Clear") {
		ctrl.ClearField()
	}
	y += int32(c.renderer.Theme.WidgetHeight) + 2
	if c.button(0, y, "Add blobs") {
		ctrl.AddRandomBlobs()
	}
	return y + int32(c.renderer.Theme.WidgetHeight) + 2
}

func (c *ControlPanel) drawPresets(ctrl Controller, y int32) int32 {
	for i, p := range systems.Presets() {
		col := i % 2
		if c.button(col, y, p.Name) {
			if err := ctrl.ApplyNamedPreset(p.Name); err != nil {
				slog.Warn("preset rejected", "preset", p.Name, "error", err)
			}
		}
		if col == 1 {
			y += int32(c.renderer.Theme.WidgetHeight) + 2
		}
	}
	return y + int32(c.renderer.Theme.WidgetHeight) + 2
}

// button draws a half-width button in column col (0 or 1).
func (c *ControlPanel) button(col int, y int32, text string) bool {
	pad := c.renderer.Theme.Padding
	w := (c.width - 3*pad) / 2
	x := c.x + pad + int32(col)*(w+pad)
	return gui.Button(rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(w),
		Height: c.renderer.Theme.WidgetHeight,
	}, text)
}

func (c *ControlPanel) set(ctrl Controller, name string, value float64) {
	if err := ctrl.SetParameter(name, value); err != nil {
		slog.Warn("parameter rejected", "param", name, "value", value, "error", err)
	}
}

// applySlider forwards a slider move to the controller. Unchanged values are
// not sent so an idle panel never touches engine state.
func applySlider(ctrl Controller, spec sliderSpec, old, value float32) bool {
	// SliderBar clamps to its range, so a value configured outside the
	// range comes back as the nearest bound without any drag.
	if bound := max(spec.Min, min(old, spec.Max)); bound != old && value == bound {
		return false
	}
	if spec.Integral {
		value = float32(math.Round(float64(value)))
	}
	if value == old {
		return false
	}
	if err := ctrl.SetParameter(spec.Param, float64(value)); err != nil {
		slog.Warn("parameter rejected", "param", spec.Param, "value", value, "error", err)
		return false
	}
	return true
}

func formatSlider(spec sliderSpec, v float32) string {
	if spec.Integral {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.4f", v)
}

func nextIndex(cur, n int) int {
	if n <= 0 {
		return 0
	}
	return (cur + 1) % n
}

func boolParam(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
