package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/turing/engine"
	"github.com/pthm-cable/turing/recorder"
	"github.com/pthm-cable/turing/renderer"
	"github.com/pthm-cable/turing/systems"
)

// stencilKeys selects a stencil by number key, in stencil index order.
var stencilKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
		g.layout()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.engine.SetPaused(!g.engine.Paused())
	}
	// Single step while paused
	if rl.IsKeyPressed(rl.KeyN) && g.engine.Paused() {
		g.engine.StepOnce()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.engine.Reset()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.engine.ClearField()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.engine.AddRandomBlobs()
	}

	rp := g.engine.RenderParams()
	sim := g.engine.SimParams()
	if rl.IsKeyPressed(rl.KeyE) {
		g.setParameter(engine.ParamRelief, boolParam(!rp.Relief))
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.setParameter(engine.ParamMapMode, boolParam(!sim.MapMode))
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.setParameter(engine.ParamPalette, float64((rp.Palette+1)%renderer.NumPalettes()))
	}
	for i, key := range stencilKeys {
		if i < len(systems.Stencils()) && rl.IsKeyPressed(key) {
			g.setParameter(engine.ParamStencil, float64(i))
		}
	}

	if rl.IsKeyPressed(rl.KeyF12) {
		g.saveScreenshot()
	}

	// Camera controls
	g.handleCameraInput()

	// Brush
	g.handlePaintInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layout()
}

// layout places the panel at the right edge and gives the rest of the
// window to the field.
func (g *Game) layout() {
	panelW := g.cfg.Screen.PanelWidth
	g.panel.SetBounds(int32(g.screenWidth)-panelW, 0, panelW, int32(g.screenHeight))
	g.camera.Resize(g.fieldSize())
}

// fieldSize returns the pixel size of the field area.
func (g *Game) fieldSize() (w, h float32) {
	w = g.screenWidth
	if g.panel != nil && g.panel.IsVisible() {
		w -= float32(g.cfg.Screen.PanelWidth)
	}
	if w < 1 {
		w = 1
	}
	h = g.screenHeight
	if h < 1 {
		h = 1
	}
	return w, h
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Arrow key panning in screen pixels
	const panSpeed = 8.0
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, panSpeed)
	}

	mouse := rl.GetMousePosition()
	overField := g.overField(mouse.X, mouse.Y)

	// Zoom toward the cursor with the wheel
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 && overField {
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheelMove*0.1)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Right-drag pans
	if rl.IsMouseButtonDown(rl.MouseButtonRight) && overField {
		d := rl.GetMouseDelta()
		g.camera.Pan(d.X, d.Y)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handlePaintInput paints with the left mouse button. Holding shift places a
// single-cell dab per click instead of a continuous brush stroke.
func (g *Game) handlePaintInput() {
	mouse := rl.GetMousePosition()
	if !g.overField(mouse.X, mouse.Y) {
		return
	}

	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	switch {
	case shift && rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		g.paintAt(mouse.X, mouse.Y, systems.Dab)
	case !shift && rl.IsMouseButtonDown(rl.MouseButtonLeft):
		g.paintAt(mouse.X, mouse.Y, systems.Brush)
	}
}

// paintAt applies the brush at a window pixel inside the field area.
func (g *Game) paintAt(px, py float32, mode systems.BrushMode) bool {
	fx, fy := g.camera.ScreenToField(px, py)
	return g.engine.Paint(fx, fy, mode)
}

// overField reports whether a window pixel lies in the field area.
func (g *Game) overField(px, py float32) bool {
	if g.panel.Contains(px, py) {
		return false
	}
	w, h := g.fieldSize()
	return px >= 0 && py >= 0 && px < w && py < h
}

func (g *Game) setParameter(name string, value float64) {
	if err := g.engine.SetParameter(name, value); err != nil {
		slog.Warn("parameter rejected", "param", name, "value", value, "error", err)
	}
}

// saveScreenshot writes the last rendered frame as a PNG into the output
// directory, or the working directory when output is disabled.
func (g *Game) saveScreenshot() {
	name := fmt.Sprintf("frame_%08d.png", g.engine.Ticks())
	path := name
	if g.output != nil {
		path = g.output.Path(name)
	}
	if err := recorder.SavePNG(path, g.engine.Frame()); err != nil {
		slog.Error("failed to save screenshot", "path", path, "error", err)
		return
	}
	slog.Info("saved screenshot", "path", path)
}

func boolParam(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
