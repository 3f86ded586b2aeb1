package arena

import (
	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/game"
)

// Run is one AI playing its own game.
type Run struct {
	Name           string
	Engine         *game.Engine
	Policy         ai.Policy
	State          game.State
	RemainingSteps int
	Exhausted      bool // ended by the step budget rather than a collision
}

// Budget is the arena step a run must not exceed at its current length.
func (r Run) Budget(stepsPerLength int) int {
	return len(r.State.SnakeParts) * stepsPerLength
}

// Advance moves a run forward by one arena step. A finished run is
// returned unchanged. A run whose length no longer earns enough budget for
// step is ended and marked exhausted. Otherwise the policy's decision is
// applied as a direction change followed by one movement tick.
func Advance(r Run, step, stepsPerLength int) Run {
	if r.State.GameOver {
		return r
	}

	budget := r.Budget(stepsPerLength)
	if step > budget {
		r.State.GameOver = true
		r.Exhausted = true
		return r
	}

	d := r.Policy.Decide(r.State)
	turned := r.Engine.Turn(r.State, ai.ToDirection(r.State.Direction, d))
	r.State = r.Engine.Step(turned)
	r.RemainingSteps = max(0, budget-step)
	return r
}
