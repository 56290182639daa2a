// Package game ties the engine to a raylib window: input, texture upload,
// panels, telemetry and recording.
package game

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/turing/camera"
	"github.com/pthm-cable/turing/config"
	"github.com/pthm-cable/turing/engine"
	"github.com/pthm-cable/turing/recorder"
	"github.com/pthm-cable/turing/telemetry"
	"github.com/pthm-cable/turing/ui"
)

// Options configures optional game features.
type Options struct {
	LogStats   bool   // Log window stats via slog
	OutputDir  string // Directory for CSV logs and config snapshot (empty = disabled)
	RecordPath string // MJPEG AVI output path (empty = disabled)
	Headless   bool   // Run without a window
}

// Game holds the simulation engine and everything needed to show it.
type Game struct {
	cfg    *config.Config
	engine *engine.Engine
	camera *camera.Camera

	// UI
	panel *ui.ControlPanel
	hud   *ui.HUD

	// Display texture, created lazily in graphical mode
	texture      rl.Texture2D
	textureReady bool
	pixels       []color.RGBA

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	lastStats telemetry.FieldStats
	haveStats bool
	logStats  bool

	video *recorder.Video

	headless     bool
	screenWidth  float32
	screenHeight float32
}

// NewGameWithOptions creates a game from a finalized config.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		engine:       eng,
		hud:          ui.NewHUD(),
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:    telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Telemetry.CoverageThreshold),
		logStats:     opts.LogStats,
		headless:     opts.Headless,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	panelW := cfg.Screen.PanelWidth
	g.panel = ui.NewControlPanel(int32(g.screenWidth)-panelW, 0, panelW, int32(g.screenHeight))

	fw, fh := g.fieldSize()
	g.camera = camera.New(fw, fh, float32(cfg.Screen.MaxZoom))
	g.camera.View = eng.RenderParams().View

	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		eng.Close()
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if opts.RecordPath != "" {
		g.video, err = recorder.NewVideo(opts.RecordPath, cfg.Derived.OutputW, cfg.Derived.OutputH,
			cfg.Recording.FPS, cfg.Recording.JPEGQuality)
		if err != nil {
			g.output.Close()
			eng.Close()
			return nil, fmt.Errorf("recording: %w", err)
		}
		slog.Info("recording", "path", opts.RecordPath)
	}

	return g, nil
}

// Update runs one frame in graphical mode: input, simulation, render and
// texture upload. A headless game falls through to UpdateHeadless.
func (g *Game) Update() {
	if g.headless {
		g.UpdateHeadless()
		return
	}
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()
	g.engine.SetView(g.camera.View)

	g.perf.StartPhase(telemetry.PhaseStep)
	g.advance()

	g.perf.StartPhase(telemetry.PhaseRender)
	frame := g.engine.Render()

	g.perf.StartPhase(telemetry.PhaseUpload)
	g.upload(frame)

	g.perf.StartPhase(telemetry.PhaseRecord)
	g.record(frame)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.observe()

	g.perf.EndTick()
}

// UpdateHeadless runs one frame without graphics. Frames are only composed
// when a recording needs them.
func (g *Game) UpdateHeadless() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseStep)
	g.advance()

	if g.video != nil {
		g.perf.StartPhase(telemetry.PhaseRender)
		frame := g.engine.Render()

		g.perf.StartPhase(telemetry.PhaseRecord)
		g.record(frame)
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.observe()

	g.perf.EndTick()
}

// advance steps the engine and credits the cell updates to the perf window.
func (g *Game) advance() {
	before := g.engine.Steps()
	g.engine.Advance()
	w, h := g.engine.Size()
	g.perf.AddCellUpdates((g.engine.Steps() - before) * uint64(w*h))
}

// record appends frame to the recording, stopping it on error.
func (g *Game) record(frame *image.RGBA) {
	if g.video == nil {
		return
	}
	if err := g.video.AddFrame(frame); err != nil {
		slog.Error("recording stopped", "error", err, "frames", g.video.Frames())
		g.closeVideo()
	}
}

func (g *Game) closeVideo() {
	if g.video == nil {
		return
	}
	if err := g.video.Close(); err != nil {
		slog.Error("failed to close recording", "error", err)
	}
	g.video = nil
}

// Engine exposes the simulation engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Tick returns the number of frames run so far.
func (g *Game) Tick() uint64 {
	return g.engine.Ticks()
}

// Unload flushes output and releases resources.
func (g *Game) Unload() {
	if g.output != nil && g.collector.Pending(g.engine.Ticks()) {
		stats := g.collector.Flush(g.engine.Ticks(), g.engine.Steps(), g.engine.SimParams(), g.engine.Field())
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.closeVideo()
	if g.textureReady {
		rl.UnloadTexture(g.texture)
		g.textureReady = false
	}
	g.engine.Close()
}
