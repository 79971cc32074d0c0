package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one simulation tick.
const (
	PhaseSnapshot  = "snapshot"
	PhaseTurns     = "turns"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseSnapshot, PhaseTurns, PhaseTelemetry}

// Phases returns the tick phases in execution order.
func Phases() []string {
	return append([]string(nil), phaseOrder...)
}

// perfSample holds timing data for a single tick.
type perfSample struct {
	tick   time.Duration
	phases map[string]time.Duration
	turns  int
}

// PerfCollector tracks tick timings over a rolling window.
type PerfCollector struct {
	ring    []perfSample
	next    int
	filled  int
	current perfSample

	tickStart  time.Time
	phaseStart time.Time
	phase      string

	// Frame timing (graphics mode)
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]perfSample, window)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{phases: make(map[string]time.Duration, len(phaseOrder))}
	p.phase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.phase != "" {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
}

// AddTurns records how many monster turns the current tick ran.
func (p *PerfCollector) AddTurns(n int) {
	p.current.turns += n
}

// EndTick closes the running phase and stores the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.phase != "" {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.phase = ""
	}
	p.current.tick = now.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Per-phase average duration and share of the average tick
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64
	AvgTurnCost    time.Duration // average cost of one monster turn

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return out
	}

	var total, turnTime time.Duration
	var turns int
	sums := make(map[string]time.Duration)
	for i, s := range p.ring[:p.filled] {
		total += s.tick
		if i == 0 || s.tick < out.MinTickDuration {
			out.MinTickDuration = s.tick
		}
		if s.tick > out.MaxTickDuration {
			out.MaxTickDuration = s.tick
		}
		for phase, d := range s.phases {
			sums[phase] += d
		}
		turns += s.turns
		turnTime += s.phases[PhaseTurns]
	}

	n := time.Duration(p.filled)
	out.AvgTickDuration = total / n
	for phase, sum := range sums {
		out.PhaseAvg[phase] = sum / n
		if out.AvgTickDuration > 0 {
			out.PhasePct[phase] = float64(out.PhaseAvg[phase]) / float64(out.AvgTickDuration) * 100
		}
	}
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	if turns > 0 {
		out.AvgTurnCost = turnTime / time.Duration(turns)
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"turn_ns", s.AvgTurnCost.Nanoseconds(),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Int64("turn_ns", s.AvgTurnCost.Nanoseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		attrs = append(attrs, slog.Float64(phase+"_pct", s.PhasePct[phase]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	TurnNS       int64   `csv:"turn_ns"`
	FPS          float64 `csv:"fps"`
	SnapshotPct  float64 `csv:"snapshot_pct"`
	TurnsPct     float64 `csv:"turns_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		TurnNS:       s.AvgTurnCost.Nanoseconds(),
		FPS:          s.FPS,
		SnapshotPct:  s.PhasePct[PhaseSnapshot],
		TurnsPct:     s.PhasePct[PhaseTurns],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
