package runner

import "log/slog"

// flushTelemetry writes a stats window once enough steps have passed, or
// unconditionally when force is set and the window is not empty.
func (r *Runner) flushTelemetry(force bool) {
	step := r.last.CurrentStep
	if !r.collector.ShouldFlush(step) {
		if !force || step == r.collector.WindowStart() {
			return
		}
	}

	stats := r.collector.Flush(r.last)
	perfStats := r.perfCollector.Stats()

	if r.statsCallback != nil {
		r.statsCallback(stats)
	}

	if r.logStats {
		stats.LogStats()
		slog.Info("perf", "window_end", stats.WindowEnd, "timing", perfStats)
	}

	if r.outputManager != nil {
		if err := r.outputManager.WriteSteps(stats); err != nil {
			slog.Error("failed to write steps", "error", err)
		}
		if err := r.outputManager.WritePerf(perfStats, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
