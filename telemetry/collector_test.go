package telemetry

import (
	"testing"

	"github.com/pthm-cable/snek/arena"
	"github.com/pthm-cable/snek/coord"
	"github.com/pthm-cable/snek/game"
)

func view(index, length int, food coord.Coord, over, exhausted bool) arena.RunView {
	parts := make([]coord.Coord, length)
	for i := range parts {
		parts[i] = coord.C(i, 0)
	}
	return arena.RunView{
		Index:     index,
		Name:      string(rune('a' + index)),
		State:     game.State{SnakeParts: parts, Food: food, GameOver: over},
		Exhausted: exhausted,
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(2, []arena.RunView{
		view(0, 1, coord.C(1, 1), false, false),
		view(1, 1, coord.C(2, 2), false, false),
	})

	step1 := arena.StepResult{CurrentStep: 1, HasRunning: true, Runs: []arena.RunView{
		view(0, 2, coord.C(3, 3), false, false),
		view(1, 1, coord.C(2, 2), true, true),
	}}
	c.Observe(step1)
	if c.ShouldFlush(1) {
		t.Error("flushed before the window was full")
	}

	step2 := arena.StepResult{CurrentStep: 2, HasRunning: true, Runs: []arena.RunView{
		view(0, 2, coord.C(3, 3), true, false),
		view(1, 1, coord.C(2, 2), true, true),
	}}
	c.Observe(step2)
	if !c.ShouldFlush(2) {
		t.Fatal("expected flush at window end")
	}

	stats := c.Flush(step2)
	if stats.WindowStart != 0 || stats.WindowEnd != 2 {
		t.Errorf("window = [%d,%d], want [0,2]", stats.WindowStart, stats.WindowEnd)
	}
	if stats.Collisions != 1 || stats.Exhausted != 1 || stats.FoodEaten != 1 {
		t.Errorf("events = %d/%d/%d, want 1/1/1", stats.Collisions, stats.Exhausted, stats.FoodEaten)
	}
	if stats.Running != 0 || stats.Finished != 2 {
		t.Errorf("running/finished = %d/%d, want 0/2", stats.Running, stats.Finished)
	}
	if stats.ScoreMean != 1.5 || stats.ScoreMax != 2 {
		t.Errorf("score mean/max = %v/%v, want 1.5/2", stats.ScoreMean, stats.ScoreMax)
	}

	if c.ShouldFlush(3) {
		t.Error("window did not restart after flush")
	}
	next := c.Flush(arena.StepResult{CurrentStep: 4, Runs: step2.Runs})
	if next.Collisions != 0 || next.Exhausted != 0 || next.FoodEaten != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStart != 2 {
		t.Errorf("WindowStart = %d, want 2", next.WindowStart)
	}
}

func TestCollectorIgnoresFinishedRuns(t *testing.T) {
	c := NewCollector(10, []arena.RunView{view(0, 3, coord.C(0, 5), true, false)})
	c.Observe(arena.StepResult{CurrentStep: 1, Runs: []arena.RunView{
		view(0, 3, coord.C(4, 4), true, false),
	}})
	stats := c.Flush(arena.StepResult{CurrentStep: 1})
	if stats.Collisions != 0 || stats.FoodEaten != 0 {
		t.Errorf("finished run produced events: %+v", stats)
	}
}

func TestNewCollectorClampsWindow(t *testing.T) {
	if got := NewCollector(0, nil).WindowSteps(); got != 1 {
		t.Errorf("WindowSteps = %d, want 1", got)
	}
}
