package arena

import (
	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/game"
)

// Identity names a run and fixes its position in results.
type Identity struct {
	Index int
	Name  string
}

// Controller holds the per-run engine and policy. Neither is shared
// between runs.
type Controller struct {
	Engine *game.Engine
	Policy ai.Policy
}

// Progress is the mutable part of a run.
type Progress struct {
	State          game.State
	RemainingSteps int
	Exhausted      bool
	FinishedAt     int // arena step at which the game ended, 0 while running
}
