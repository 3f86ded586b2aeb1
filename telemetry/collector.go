package telemetry

import (
	"github.com/pthm-cable/snek/arena"
	"github.com/pthm-cable/snek/coord"
)

// runMark is what the collector remembers about a run between steps.
type runMark struct {
	food     coord.Coord
	gameOver bool
}

// Collector accumulates arena events within step windows and produces
// WindowStats.
type Collector struct {
	windowSteps int
	windowStart int

	last map[int]runMark

	// Event counters for current window
	collisions int
	exhausted  int
	foodEaten  int
}

// NewCollector creates a collector that flushes every windowSteps arena
// steps. initial is the arena's state before the first step.
func NewCollector(windowSteps int, initial []arena.RunView) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	c := &Collector{
		windowSteps: windowSteps,
		last:        make(map[int]runMark, len(initial)),
	}
	for _, v := range initial {
		c.last[v.Index] = mark(v)
	}
	return c
}

func mark(v arena.RunView) runMark {
	return runMark{
		food:     v.State.Food,
		gameOver: v.State.GameOver,
	}
}

// Observe records the events implied by a step result: games that ended
// and food that was eaten since the previous observation.
func (c *Collector) Observe(res arena.StepResult) {
	for _, v := range res.Runs {
		cur := mark(v)
		prev, seen := c.last[v.Index]
		c.last[v.Index] = cur
		if !seen || prev.gameOver {
			continue
		}

		if cur.food != prev.food {
			c.foodEaten++
		}
		if cur.gameOver {
			if v.Exhausted {
				c.exhausted++
			} else {
				c.collisions++
			}
		}
	}
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(currentStep int) bool {
	return currentStep-c.windowStart >= c.windowSteps
}

// Flush produces a WindowStats from the latest result and resets counters
// for the next window.
func (c *Collector) Flush(res arena.StepResult) WindowStats {
	scores := make([]float64, len(res.Runs))
	var running int
	for i, v := range res.Runs {
		scores[i] = float64(v.Score())
		if !v.State.GameOver {
			running++
		}
	}
	ss := ComputeScoreStats(scores)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   res.CurrentStep,

		Running:  running,
		Finished: len(res.Runs) - running,

		Collisions: c.collisions,
		Exhausted:  c.exhausted,
		FoodEaten:  c.foodEaten,

		ScoreMean: ss.Mean,
		ScoreStd:  ss.Std,
		ScoreP10:  ss.P10,
		ScoreP50:  ss.P50,
		ScoreP90:  ss.P90,
		ScoreMax:  ss.Max,
	}

	// Reset for next window
	c.windowStart = res.CurrentStep
	c.collisions = 0
	c.exhausted = 0
	c.foodEaten = 0

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int {
	return c.windowSteps
}

// WindowStart returns the step at which the current window began.
func (c *Collector) WindowStart() int {
	return c.windowStart
}
