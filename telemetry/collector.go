package telemetry

import (
	"math"

	"github.com/pthm-cable/turing/field"
	"github.com/pthm-cable/turing/systems"
)

// Collector samples the field at window boundaries and produces WindowStats.
type Collector struct {
	windowTicks       uint64
	coverageThreshold float64

	// Current window tracking
	windowStartTick uint64
	started         bool

	// V channel at window start, for the activity measure
	startV  []float64
	scratch []float64
}

// NewCollector creates a new stats collector.
// windowTicks: ticks per stats window.
// coverageThreshold: V level above which a cell counts as covered.
func NewCollector(windowTicks int, coverageThreshold float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:       uint64(windowTicks),
		coverageThreshold: coverageThreshold,
	}
}

// WindowTicks returns the window length.
func (c *Collector) WindowTicks() uint64 { return c.windowTicks }

// Observe is called once per tick. When tick closes a window it returns the
// window's stats and true.
func (c *Collector) Observe(tick, steps uint64, p systems.Params, f *field.Field) (WindowStats, bool) {
	if !c.started {
		c.startWindow(tick, f)
		return WindowStats{}, false
	}
	if tick-c.windowStartTick < c.windowTicks {
		return WindowStats{}, false
	}

	stats := c.Flush(tick, steps, p, f)
	c.startWindow(tick, f)
	return stats, true
}

// Flush computes stats for the current (possibly partial) window without
// starting a new one.
func (c *Collector) Flush(tick, steps uint64, p systems.Params, f *field.Field) WindowStats {
	c.scratch = f.Channel(1, c.scratch)
	activity := 0.0
	if len(c.startV) == len(c.scratch) && len(c.scratch) > 0 {
		var sum float64
		for i, v := range c.scratch {
			sum += math.Abs(v - c.startV[i])
		}
		activity = sum / float64(len(c.scratch))
	}

	fs, sorted := ComputeFieldStats(f, c.coverageThreshold, c.scratch)
	c.scratch = sorted

	return WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		Steps:           steps,
		Feed:            float64(p.Feed),
		Kill:            float64(p.Kill),
		Stencil:         p.Stencil.String(),
		FieldStats:      fs,
		Activity:        activity,
	}
}

// Pending reports whether ticks have been observed since the last window
// closed, so a final Flush would not be empty.
func (c *Collector) Pending(tick uint64) bool {
	return c.started && tick > c.windowStartTick
}

func (c *Collector) startWindow(tick uint64, f *field.Field) {
	c.windowStartTick = tick
	c.startV = f.Channel(1, c.startV)
	c.started = true
}
