package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies one part of an animation tick.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseStep
	PhaseRender
	PhaseUpload
	PhaseRecord
	PhaseTelemetry

	numPhases
)

var phaseNames = [numPhases]string{"input", "step", "render", "upload", "record", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// perfSample is the timing of one tick.
type perfSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
	cells  uint64
}

// PerfCollector keeps a ring of recent tick timings.
// Phases are timed back to back: starting a phase ends the previous one.
type PerfCollector struct {
	ring  []perfSample
	next  int
	count int

	cur        perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Frame timing (graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration

	scratch []float64
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]perfSample, windowSize)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = perfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.endPhase(now)
	p.phaseStart = now
	p.phase = ph
	p.inPhase = true
}

func (p *PerfCollector) endPhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < numPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// AddCellUpdates credits n cell updates to the current tick.
func (p *PerfCollector) AddCellUpdates(n uint64) {
	p.cur.cells += n
}

// EndTick closes the current tick and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.endPhase(now)
	p.cur.tick = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats summarizes the ticks currently in the ring.
type PerfStats struct {
	AvgTickDuration time.Duration
	P95TickDuration time.Duration
	MaxTickDuration time.Duration

	// Share of tick time per phase, in percent
	PhasePct [numPhases]float64

	TicksPerSecond       float64
	CellUpdatesPerSecond float64

	FPS float64
}

// Stats computes aggregated statistics over the ring.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	var cells uint64
	p.scratch = p.scratch[:0]
	for _, smp := range p.ring[:p.count] {
		total += smp.tick
		s.MaxTickDuration = max(s.MaxTickDuration, smp.tick)
		for i, d := range smp.phases {
			phaseSum[i] += d
		}
		cells += smp.cells
		p.scratch = append(p.scratch, float64(smp.tick))
	}

	sort.Float64s(p.scratch)
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, p.scratch, nil))
	s.AvgTickDuration = total / time.Duration(p.count)

	if total > 0 {
		for i, d := range phaseSum {
			s.PhasePct[i] = float64(d) / float64(total) * 100
		}
		secs := total.Seconds()
		s.TicksPerSecond = float64(p.count) / secs
		s.CellUpdatesPerSecond = float64(cells) / secs
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("mcups", s.CellUpdatesPerSecond/1e6),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	// Skip phases that barely register
	for ph := Phase(0); ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	MCUPS        float64 `csv:"mcups"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	StepPct      float64 `csv:"step_pct"`
	RenderPct    float64 `csv:"render_pct"`
	UploadPct    float64 `csv:"upload_pct"`
	RecordPct    float64 `csv:"record_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		MCUPS:        s.CellUpdatesPerSecond / 1e6,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		StepPct:      s.PhasePct[PhaseStep],
		RenderPct:    s.PhasePct[PhaseRender],
		UploadPct:    s.PhasePct[PhaseUpload],
		RecordPct:    s.PhasePct[PhaseRecord],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
