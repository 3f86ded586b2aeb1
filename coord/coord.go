// Package coord provides integer 2D vector arithmetic for the board grid.
package coord

import "sort"

// Coord is a cell position or a direction vector on the board.
type Coord struct {
	X, Y int
}

// C is shorthand for building a Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns a + b.
func Add(a, b Coord) Coord {
	return Coord{X: a.X + b.X, Y: a.Y + b.Y}
}

// Mult returns the component-wise product of a and b.
func Mult(a, b Coord) Coord {
	return Coord{X: a.X * b.X, Y: a.Y * b.Y}
}

// Eq reports whether c and o are the same cell.
func (c Coord) Eq(o Coord) bool {
	return c.X == o.X && c.Y == o.Y
}

// Collide reports whether c appears in list.
func Collide(c Coord, list []Coord) bool {
	for _, o := range list {
		if o == c {
			return true
		}
	}
	return false
}

// Rotate90 turns a direction vector a quarter turn clockwise (screen
// coordinates, y grows downward): Right becomes Down.
func Rotate90(c Coord) Coord {
	return Coord{X: -c.Y, Y: c.X}
}

// Rotate180 reverses a direction vector.
func Rotate180(c Coord) Coord {
	return Coord{X: -c.X, Y: -c.Y}
}

// Rotate270 turns a direction vector a quarter turn counter-clockwise.
func Rotate270(c Coord) Coord {
	return Coord{X: c.Y, Y: -c.X}
}

// Less orders coordinates by x, then y.
func Less(a, b Coord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// SortAndUniq returns a sorted copy of list with duplicates removed.
// The input slice is left untouched.
func SortAndUniq(list []Coord) []Coord {
	if len(list) == 0 {
		return []Coord{}
	}
	sorted := make([]Coord, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool { return Less(sorted[i], sorted[j]) })

	out := sorted[:1]
	for _, c := range sorted[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

// Wrap normalises c into [0,width)×[0,height). Offsets of any magnitude
// wrap correctly, including negative ones.
func Wrap(c Coord, width, height int) Coord {
	return Coord{X: mod(c.X, width), Y: mod(c.Y, height)}
}

func mod(v, n int) int {
	if n <= 0 {
		return 0
	}
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}
