package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated arena statistics for a window of steps.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Counts at window end
	Running  int `csv:"running"`
	Finished int `csv:"finished"`

	// Events during window
	Collisions int `csv:"collisions"` // games ended by the engine
	Exhausted  int `csv:"exhausted"`  // games ended by the step budget
	FoodEaten  int `csv:"food_eaten"`

	// Score distribution over all runs at window end
	ScoreMean float64 `csv:"score_mean"`
	ScoreStd  float64 `csv:"score_std"`
	ScoreP10  float64 `csv:"score_p10"`
	ScoreP50  float64 `csv:"score_p50"`
	ScoreP90  float64 `csv:"score_p90"`
	ScoreMax  float64 `csv:"score_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ScoreStats summarises a set of scores.
type ScoreStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeScoreStats calculates mean, population std, percentiles and max.
func ComputeScoreStats(values []float64) ScoreStats {
	if len(values) == 0 {
		return ScoreStats{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return ScoreStats{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s ScoreStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("max", s.Max),
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("window_end", s.WindowEnd),
		slog.Int("running", s.Running),
		slog.Int("finished", s.Finished),
		slog.Int("collisions", s.Collisions),
		slog.Int("exhausted", s.Exhausted),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Float64("score_mean", s.ScoreMean),
		slog.Float64("score_std", s.ScoreStd),
		slog.Float64("score_p50", s.ScoreP50),
		slog.Float64("score_max", s.ScoreMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"running", s.Running,
		"finished", s.Finished,
		"collisions", s.Collisions,
		"exhausted", s.Exhausted,
		"food_eaten", s.FoodEaten,
		"score_mean", s.ScoreMean,
		"score_std", s.ScoreStd,
		"score_p10", s.ScoreP10,
		"score_p50", s.ScoreP50,
		"score_p90", s.ScoreP90,
		"score_max", s.ScoreMax,
	)
}
