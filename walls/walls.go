// Package walls defines wall layouts: procedural presets, segment
// rasterization and validation of user-supplied wall lists.
package walls

import (
	"slices"

	"github.com/pthm-cable/snek/coord"
)

// Segment is an axis-aligned wall between two inclusive endpoints.
// Endpoints that differ on both axes describe a filled rectangle.
type Segment [2]coord.Coord

// Seg builds a Segment from endpoint components.
func Seg(x1, y1, x2, y2 int) Segment {
	return Segment{coord.C(x1, y1), coord.C(x2, y2)}
}

// LayoutFunc produces a wall layout for a board of the given size.
type LayoutFunc func(width, height int) []Segment

// Preset is a named, selectable wall layout.
type Preset struct {
	Name   string
	Key    string
	Layout LayoutFunc
}

// Presets lists the built-in layouts in display order.
var Presets = []Preset{
	{Name: "Corners", Key: "corners", Layout: Corners},
	{Name: "Cross", Key: "cross", Layout: Cross},
	{Name: "Full", Key: "full", Layout: Full},
	{Name: "No", Key: "no", Layout: None},
}

// None is the empty layout.
func None(width, height int) []Segment {
	return []Segment{}
}

// Full traces the board edges. Each side stops one cell short of both
// corners so every corner cell stays open.
func Full(width, height int) []Segment {
	return []Segment{
		Seg(0, 1, 0, height-2),              // left
		Seg(1, height-1, width-2, height-1), // bottom
		Seg(width-1, height-2, width-1, 1),  // right
		Seg(width-2, 0, 1, 0),               // top
	}
}

// Corners places eight short segments, each about a quarter of a side,
// hugging the four corners.
func Corners(width, height int) []Segment {
	qw, qh := width/4, height/4
	return []Segment{
		Seg(0, 0, 0, qh),                             // left, top
		Seg(0, height-qh-1, 0, height-1),             // left, bottom
		Seg(0, height-1, qw, height-1),               // bottom, left
		Seg(width-qw-1, height-1, width-2, height-1), // bottom, right
		Seg(width-1, height-1, width-1, height-qh-1), // right, bottom
		Seg(width-1, qh, width-1, 1),                 // right, top
		Seg(width-1, 0, width-qw-1, 0),               // top, right
		Seg(qw, 0, 1, 0),                             // top, left
	}
}

// Cross places one vertical and one horizontal band through the middle
// of the board, each spanning the full dimension.
func Cross(width, height int) []Segment {
	return []Segment{
		Seg(width/2-1, 0, (width+1)/2, height-1),
		Seg(0, height/2-1, width-1, (height+1)/2),
	}
}

// ByKey returns the preset registered under key.
func ByKey(key string) (Preset, bool) {
	for _, p := range Presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// Match reports which preset, if any, yields exactly segs on a board of
// the given size.
func Match(segs []Segment, width, height int) (Preset, bool) {
	for _, p := range Presets {
		if slices.Equal(p.Layout(width, height), segs) {
			return p, true
		}
	}
	return Preset{}, false
}
