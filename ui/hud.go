package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/turing/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Steps     uint64
	Ticks     uint64
	FPS       int32
	Paused    bool
	Recording bool
	Zoom      float64
	Stats     telemetry.FieldStats
	HaveStats bool
}

// statsSection lays out the field readout. Data is a HUDData.
var statsSection = SectionDescriptor{
	ID:    "field",
	Title: "Field",
	Visible: func(d any) bool {
		return d.(HUDData).HaveStats
	},
	Fields: []FieldDescriptor{
		{ID: "mean_u", Label: "Mean U", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return float32(d.(HUDData).Stats.MeanU) }},
		{ID: "mean_v", Label: "Mean V", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 { return float32(d.(HUDData).Stats.MeanV) }},
		{ID: "range_v", Label: "V range", Widget: WidgetText, TextGetter: func(d any) string {
			s := d.(HUDData).Stats
			return fmt.Sprintf("%.2f .. %.2f", s.MinV, s.MaxV)
		}},
		{ID: "coverage", Label: "Coverage", Widget: WidgetBar, Getter: func(d any) float32 { return float32(d.(HUDData).Stats.Coverage) }},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(statusLine(data), 10, 10, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 30, 16, rl.Yellow)
	}
	if data.Recording {
		rl.DrawText("REC", 90, 30, 16, rl.Red)
	}

	h.renderer.DrawSection(10, 52, statsSection, data, 240)
}

func statusLine(d HUDData) string {
	return fmt.Sprintf("Steps: %d | Frames: %d | Zoom: %.2fx | FPS: %d", d.Steps, d.Ticks, d.Zoom, d.FPS)
}
