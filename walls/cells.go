package walls

import (
	"log/slog"

	"github.com/pthm-cable/snek/coord"
)

// Cells rasterizes segs into the sorted, de-duplicated set of cells they
// cover. Segment order and repeated segments do not affect the result.
func Cells(segs []Segment) []coord.Coord {
	var cells []coord.Coord
	for _, s := range segs {
		cells = append(cells, segmentCells(s)...)
	}
	return coord.SortAndUniq(cells)
}

func segmentCells(s Segment) []coord.Coord {
	x0, x1 := minMax(s[0].X, s[1].X)
	y0, y1 := minMax(s[0].Y, s[1].Y)

	cells := make([]coord.Coord, 0, (x1-x0+1)*(y1-y0+1))
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			cells = append(cells, coord.C(x, y))
		}
	}
	return cells
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// CellSet is a membership index over wall cells.
type CellSet map[coord.Coord]struct{}

// NewCellSet indexes cells for constant-time lookup.
func NewCellSet(cells []coord.Coord) CellSet {
	set := make(CellSet, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether c is a wall cell.
func (s CellSet) Has(c coord.Coord) bool {
	_, ok := s[c]
	return ok
}

// Validate reports whether every endpoint of every segment is a pair of
// non-negative integers.
func Validate(segs []Segment) bool {
	for _, s := range segs {
		for _, p := range s {
			if p.X < 0 || p.Y < 0 {
				return false
			}
		}
	}
	return true
}

// Sanitize returns segs unchanged when valid and an empty layout otherwise.
func Sanitize(segs []Segment) []Segment {
	if !Validate(segs) {
		slog.Warn("rejecting invalid wall list", "segments", len(segs))
		return []Segment{}
	}
	return segs
}
