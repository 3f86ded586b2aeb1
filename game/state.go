package game

import "github.com/pthm-cable/snek/coord"

// Direction is a unit vector along one of the four cardinal axes.
type Direction = coord.Coord

// Cardinal directions. Y grows downward.
var (
	Up    = coord.C(0, -1)
	Right = coord.C(1, 0)
	Down  = coord.C(0, 1)
	Left  = coord.C(-1, 0)
)

// Directions lists the cardinals in spawn-draw order.
var Directions = [4]Direction{Up, Right, Down, Left}

// State is one snapshot of a game. States are values: a transition always
// builds new slices and never writes to the ones it was given.
type State struct {
	SnakeParts []coord.Coord // head first
	Direction  Direction
	Growth     int // ticks left during which the tail is kept
	Food       coord.Coord
	GameOver   bool
}

// Head returns the head cell.
func (s State) Head() coord.Coord {
	return s.SnakeParts[0]
}

// Score is the body length.
func (s State) Score() int {
	return len(s.SnakeParts)
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.SnakeParts = make([]coord.Coord, len(s.SnakeParts))
	copy(out.SnakeParts, s.SnakeParts)
	return out
}
