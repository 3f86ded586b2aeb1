package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one part of an arena step.
type Phase int

const (
	PhaseArena Phase = iota
	PhaseTelemetry
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseArena:
		return "arena"
	case PhaseTelemetry:
		return "telemetry"
	}
	return "unknown"
}

type stepSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times arena steps over a ring of the last windowSize steps.
type PerfCollector struct {
	samples []stepSample
	next    int
	count   int

	current    stepSample
	stepStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over the last windowSize
// steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	return &PerfCollector{samples: make([]stepSample, max(1, windowSize))}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.stepStart = time.Now()
	p.current = stepSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndTick closes the step and stores it, overwriting the oldest sample once
// the ring is full.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.stepStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.count = min(p.count+1, len(p.samples))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// PerfStats summarizes the stored steps.
type PerfStats struct {
	Avg, Min, Max  time.Duration
	StepsPerSecond float64
	Pct            [numPhases]float64 // share of the average step, 0..100
}

// Stats aggregates the stored steps. It is zero before the first step.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phases [numPhases]time.Duration
	for i, sample := range p.samples[:p.count] {
		total += sample.total
		if i == 0 || sample.total < s.Min {
			s.Min = sample.total
		}
		s.Max = max(s.Max, sample.total)
		for ph, d := range sample.phases {
			phases[ph] += d
		}
	}

	s.Avg = total / time.Duration(p.count)
	if total > 0 {
		s.StepsPerSecond = float64(time.Second) / float64(s.Avg)
		for ph, d := range phases {
			s.Pct[ph] = float64(d) / float64(total) * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("avg_us", s.Avg.Microseconds()),
		slog.Int64("min_us", s.Min.Microseconds()),
		slog.Int64("max_us", s.Max.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
		slog.Float64("arena_pct", s.Pct[PhaseArena]),
		slog.Float64("telemetry_pct", s.Pct[PhaseTelemetry]),
	)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	ArenaPct     float64 `csv:"arena_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.Avg.Microseconds(),
		MinTickUS:    s.Min.Microseconds(),
		MaxTickUS:    s.Max.Microseconds(),
		TicksPerSec:  s.StepsPerSecond,
		ArenaPct:     s.Pct[PhaseArena],
		TelemetryPct: s.Pct[PhaseTelemetry],
	}
}
