// Package runner drives an arena to completion and feeds its progress to
// telemetry: windowed stats, per-step timing, final results and the hall
// of fame.
package runner

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/arena"
	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/telemetry"
)

// Options configures a Runner.
type Options struct {
	LogStats  bool
	OutputDir string // empty disables file output

	// StatsCallback, if set, receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Runner owns one arena and its telemetry.
type Runner struct {
	cfg     *config.Config
	arena   *arena.Arena
	entries []arena.Entry

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	hallOfFame    *telemetry.HallOfFame

	logStats      bool
	statsCallback func(telemetry.WindowStats)
	last          arena.StepResult
	finished      bool
}

// New creates the arena for entries and prepares telemetry.
func New(cfg *config.Config, entries []arena.Entry, opts Options) (*Runner, error) {
	a, err := arena.New(cfg.Board, cfg.Arena, entries)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	initial := a.Runs()
	return &Runner{
		cfg:           cfg,
		arena:         a,
		entries:       entries,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, initial),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.StatsWindow),
		outputManager: om,
		hallOfFame:    telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		last:          arena.StepResult{HasRunning: true, Runs: initial},
	}, nil
}

// Arena returns the underlying arena.
func (r *Runner) Arena() *arena.Arena {
	return r.arena
}

// HallOfFame returns the hall of fame. It is filled when the run finishes.
func (r *Runner) HallOfFame() *telemetry.HallOfFame {
	return r.hallOfFame
}

// Step advances the arena once and updates telemetry.
func (r *Runner) Step() arena.StepResult {
	r.perfCollector.StartTick()
	r.perfCollector.StartPhase(telemetry.PhaseArena)
	res := r.arena.Step()

	r.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	r.collector.Observe(res)
	r.perfCollector.EndTick()

	r.last = res
	r.flushTelemetry(false)
	return res
}

// Run steps until every game has ended or maxSteps steps have been taken
// (maxSteps <= 0 means no cap), then records the final results.
func (r *Runner) Run(maxSteps int) (arena.StepResult, error) {
	for r.last.HasRunning {
		if maxSteps > 0 && r.last.CurrentStep >= maxSteps {
			slog.Info("max steps reached", "step", r.last.CurrentStep)
			break
		}
		r.Step()
	}
	return r.last, r.Finish()
}

// Finish flushes the last window and writes results and the hall of fame.
// It is safe to call more than once.
func (r *Runner) Finish() error {
	if r.finished {
		return nil
	}
	r.finished = true

	r.flushTelemetry(true)

	for _, v := range r.last.Runs {
		r.hallOfFame.Consider(telemetry.NewHallEntry(v, r.last.CurrentStep, r.policy(v.Index)))
	}

	scores := make([]float64, len(r.last.Runs))
	for i, v := range r.last.Runs {
		scores[i] = float64(v.Score())
	}
	slog.Info("arena finished",
		"arena", r.arena.ID,
		"steps", r.last.CurrentStep,
		"running", r.last.HasRunning,
		"scores", telemetry.ComputeScoreStats(scores),
		"top_score", r.hallOfFame.TopScore(),
	)

	results := telemetry.Results(r.arena.ID, r.cfg.Board.Seed, r.last.CurrentStep, r.last.Runs)
	if err := r.outputManager.WriteResults(results); err != nil {
		return fmt.Errorf("finishing arena: %w", err)
	}
	if err := r.outputManager.WriteHallOfFame(r.hallOfFame); err != nil {
		return fmt.Errorf("finishing arena: %w", err)
	}
	return nil
}

// Close stops the arena's workers and closes output files.
func (r *Runner) Close() error {
	r.arena.Close()
	return r.outputManager.Close()
}

func (r *Runner) policy(index int) ai.Policy {
	if index < 0 || index >= len(r.entries) {
		return nil
	}
	return r.entries[index].Policy
}
