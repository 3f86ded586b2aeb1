// Package vision implements the raycast sensor that encodes the board
// around the snake's head as a flat feature vector.
//
// For each of eight directions relative to the current heading the sensor
// walks outward from the head, wrapping around the board, and records the
// step at which it first meets food, a snake cell and a wall cell. A zero
// means "not seen within range".
package vision

import (
	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/coord"
	"github.com/pthm-cable/snek/game"
	"github.com/pthm-cable/snek/walls"
)

// Ray indices, clockwise from forward.
const (
	RayForward = iota
	RayForwardRight
	RayRight
	RayBackRight
	RayBack
	RayBackLeft
	RayLeft
	RayForwardLeft
)

// Channel indices within one ray.
const (
	ChannelFood = iota
	ChannelTail
	ChannelWall
)

const (
	NumRays     = 8
	NumChannels = 3
	NumInputs   = NumRays * NumChannels
)

// Sensor raycasts against a fixed board. It never mutates its inputs and
// consumes no randomness, so one Sensor can serve any number of games on
// the same board.
type Sensor struct {
	width, height int
	maxDistance   int
	wallSet       walls.CellSet
}

// New creates a sensor for cfg that looks at most maxDistance cells along
// each ray.
func New(cfg config.Board, maxDistance int) *Sensor {
	return &Sensor{
		width:       cfg.Width,
		height:      cfg.Height,
		maxDistance: maxDistance,
		wallSet:     walls.NewCellSet(walls.Cells(cfg.Walls)),
	}
}

// MaxDistance returns the sensor range.
func (s *Sensor) MaxDistance() int {
	return s.maxDistance
}

// Directions returns the eight ray vectors for a heading, in ray order.
// Diagonals are sums of the neighbouring axes.
func Directions(forward coord.Coord) [NumRays]coord.Coord {
	right := coord.Rotate90(forward)
	back := coord.Rotate180(forward)
	left := coord.Rotate270(forward)

	return [NumRays]coord.Coord{
		forward,
		coord.Add(forward, right),
		right,
		coord.Add(back, right),
		back,
		coord.Add(back, left),
		left,
		coord.Add(forward, left),
	}
}

// See returns NumInputs distances laid out ray-major:
// [ray0.food, ray0.tail, ray0.wall, ray1.food, ...].
func (s *Sensor) See(snakeParts []coord.Coord, forward, food coord.Coord) Reading {
	out := make(Reading, NumInputs)
	if len(snakeParts) == 0 {
		return out
	}

	body := make(map[coord.Coord]struct{}, len(snakeParts))
	for _, c := range snakeParts {
		body[c] = struct{}{}
	}

	head := snakeParts[0]
	for ray, dir := range Directions(forward) {
		var foodDist, tailDist, wallDist int
		cell := head
		for step := 1; step <= s.maxDistance; step++ {
			cell = coord.Wrap(coord.Add(cell, dir), s.width, s.height)

			if foodDist == 0 && cell == food {
				foodDist = step
			}
			if tailDist == 0 {
				if _, ok := body[cell]; ok {
					tailDist = step
				}
			}
			if wallDist == 0 && s.wallSet.Has(cell) {
				wallDist = step
			}
			if foodDist != 0 && tailDist != 0 && wallDist != 0 {
				break
			}
		}

		base := ray * NumChannels
		out[base+ChannelFood] = float64(foodDist)
		out[base+ChannelTail] = float64(tailDist)
		out[base+ChannelWall] = float64(wallDist)
	}
	return out
}

// SeeState is See applied to a game state.
func (s *Sensor) SeeState(st game.State) Reading {
	return s.See(st.SnakeParts, st.Direction, st.Food)
}

// Reading is a sensor output vector.
type Reading []float64

// At returns the distance recorded on one channel of one ray.
func (r Reading) At(ray, channel int) float64 {
	return r[ray*NumChannels+channel]
}
