// Package game implements the tick-driven snake simulation on a toroidal
// board: spawn, movement, growth, collision and food placement.
package game

import (
	"errors"
	"log/slog"
	"math"

	"golang.org/x/exp/rand"

	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/coord"
	"github.com/pthm-cable/snek/walls"
)

// ErrInvalidMap is returned when spawn finds no free cell for the head or
// the food.
var ErrInvalidMap = errors.New("invalid map")

// Engine binds a board configuration, its rasterized walls and one random
// stream for the lifetime of a run. A run is reproducible from the board
// seed and the ordered sequence of direction inputs.
type Engine struct {
	cfg       config.Board
	wallCells []coord.Coord
	wallSet   walls.CellSet
	rng       *rand.Rand
	logger    *slog.Logger
}

// New creates an engine for cfg. Missing or out-of-range fields are
// normalized as config.NewBoard does, so a zero-value board still spawns a
// snake with non-negative growth.
func New(cfg config.Board) *Engine {
	cfg = config.NewBoard(cfg)
	cells := walls.Cells(cfg.Walls)
	return &Engine{
		cfg:       cfg,
		wallCells: cells,
		wallSet:   walls.NewCellSet(cells),
		rng:       NewRNG(cfg.Seed),
		logger:    slog.Default().With("seed", cfg.Seed),
	}
}

// Config returns the bound board configuration.
func (e *Engine) Config() config.Board {
	return e.cfg
}

// WallCells returns the sorted wall cells.
func (e *Engine) WallCells() []coord.Coord {
	out := make([]coord.Coord, len(e.wallCells))
	copy(out, e.wallCells)
	return out
}

// IsWall reports whether c is a wall cell.
func (e *Engine) IsWall(c coord.Coord) bool {
	return e.wallSet.Has(c)
}

// MoveOnBoard advances c by d and wraps the result onto the board.
func (e *Engine) MoveOnBoard(c coord.Coord, d Direction) coord.Coord {
	return coord.Wrap(coord.Add(c, d), e.cfg.Width, e.cfg.Height)
}

// Tick is the state transition. With prev nil it spawns a new game; with
// newDir set it only replaces the direction; otherwise it advances the
// snake one cell. The only error is ErrInvalidMap from spawning.
func (e *Engine) Tick(prev *State, newDir *Direction) (State, error) {
	if prev == nil {
		return e.Spawn()
	}
	if newDir != nil {
		return e.Turn(*prev, *newDir), nil
	}
	return e.Step(*prev), nil
}

// Spawn draws a direction, a head cell and a food cell.
func (e *Engine) Spawn() (State, error) {
	dir := Directions[int(e.rng.Float64()*4)]

	head, ok := e.randomFreeCell(nil)
	if !ok {
		return State{}, ErrInvalidMap
	}
	food, ok := e.randomFreeCell([]coord.Coord{head})
	if !ok {
		return State{}, ErrInvalidMap
	}

	e.logger.Debug("spawn", "head", head, "food", food, "direction", dir)
	return State{
		SnakeParts: []coord.Coord{head},
		Direction:  dir,
		Growth:     e.cfg.InitialSize - 1,
		Food:       food,
	}, nil
}

// Turn replaces the direction without moving. It applies to terminal
// states too and leaves GameOver as it was.
func (e *Engine) Turn(s State, d Direction) State {
	s.Direction = d
	return s
}

// Step advances the snake one cell in its current direction.
func (e *Engine) Step(s State) State {
	if s.GameOver {
		return s
	}

	next := e.MoveOnBoard(s.Head(), s.Direction)

	retained := s.SnakeParts
	if s.Growth < 1 {
		retained = s.SnakeParts[:len(s.SnakeParts)-1]
	}

	if next == s.Food {
		// The tail stays on an eat tick regardless of pending growth.
		parts := prepend(next, s.SnakeParts)
		food, ok := e.randomFreeCell(parts)
		if !ok {
			e.logger.Debug("game over", "reason", "board full", "score", len(s.SnakeParts))
			s.GameOver = true
			return s
		}
		s.Growth += e.foodGrowth(len(s.SnakeParts))
		s.SnakeParts = parts
		s.Food = food
		return s
	}

	if coord.Collide(next, retained) || e.wallSet.Has(next) {
		e.logger.Debug("game over", "reason", "collision", "score", len(s.SnakeParts))
		s.GameOver = true
		return s
	}

	s.SnakeParts = prepend(next, retained)
	if s.Growth > 0 {
		s.Growth--
	}
	return s
}

// AcceptsTurn reports whether a player turn toward d should be applied:
// repeating the current direction is a no-op, and turning back onto the
// neck of a body longer than two cells is refused.
func (e *Engine) AcceptsTurn(s State, d Direction) bool {
	if d == s.Direction {
		return false
	}
	if len(s.SnakeParts) > 2 && e.MoveOnBoard(s.Head(), d) == s.SnakeParts[1] {
		return false
	}
	return true
}

// foodGrowth is the growth gained by eating with a body of length n.
func (e *Engine) foodGrowth(n int) int {
	gain := e.cfg.FoodValue
	if e.cfg.FoodMult {
		gain = float64(n) * e.cfg.FoodValue
	}
	return int(math.Ceil(math.Max(e.cfg.FoodMin, gain)))
}

// randomFreeCell draws a uniformly random cell that is neither a wall nor
// in taken. Cells are enumerated column by column. No value is drawn when
// the board has no free cell.
func (e *Engine) randomFreeCell(taken []coord.Coord) (coord.Coord, bool) {
	w, h := e.cfg.Width, e.cfg.Height
	takenSet := make(map[coord.Coord]struct{}, len(taken))
	for _, c := range taken {
		takenSet[c] = struct{}{}
	}

	var free []coord.Coord
	for i := 0; i < w*h; i++ {
		c := coord.C(i/h, i%h)
		if e.wallSet.Has(c) {
			continue
		}
		if _, ok := takenSet[c]; ok {
			continue
		}
		free = append(free, c)
	}
	if len(free) == 0 {
		return coord.Coord{}, false
	}
	return free[int(e.rng.Float64()*float64(len(free)))], true
}

func prepend(head coord.Coord, body []coord.Coord) []coord.Coord {
	parts := make([]coord.Coord, 0, len(body)+1)
	parts = append(parts, head)
	return append(parts, body...)
}
