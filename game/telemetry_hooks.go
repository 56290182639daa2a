package game

import (
	"log/slog"
)

// observe feeds the stats collector and, when a window closes, logs and
// writes the window's field and performance stats.
func (g *Game) observe() {
	stats, ok := g.collector.Observe(g.engine.Ticks(), g.engine.Steps(), g.engine.SimParams(), g.engine.Field())
	if !ok {
		return
	}
	g.lastStats = stats.FieldStats
	g.haveStats = true

	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
