// Package ai turns game states into relative steering decisions.
package ai

import (
	"github.com/pthm-cable/snek/coord"
	"github.com/pthm-cable/snek/game"
)

// Decision is a steering choice relative to the current heading.
type Decision int

const (
	None Decision = iota
	Left
	Right
)

// NumDecisions is the number of decision categories.
const NumDecisions = 3

func (d Decision) String() string {
	switch d {
	case None:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// ToDirection maps a decision to an absolute direction. Left is a
// counter-clockwise quarter turn, Right a clockwise one.
func ToDirection(forward game.Direction, d Decision) game.Direction {
	switch d {
	case Left:
		return coord.Rotate270(forward)
	case Right:
		return coord.Rotate90(forward)
	}
	return forward
}

// Policy picks a decision for a state. Implementations may carry their
// own random stream, so a Policy is not safe for concurrent use.
type Policy interface {
	Decide(s game.State) Decision
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(s game.State) Decision

// Decide calls f(s).
func (f PolicyFunc) Decide(s game.State) Decision {
	return f(s)
}
