package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/snek/coord"
	"github.com/pthm-cable/snek/walls"
)

// Board is the configuration bound to a single game engine. It is treated
// as immutable once an engine has been built from it.
type Board struct {
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	InitialSize int             `yaml:"initial_size"` // Body length the snake grows to after spawn
	FoodValue   float64         `yaml:"food_value"`   // Growth per food, or per body cell when FoodMult
	FoodMult    bool            `yaml:"food_mult"`
	FoodMin     float64         `yaml:"food_min"` // Lower bound on growth per food
	Walls       []walls.Segment `yaml:"walls"`
	Seed        string          `yaml:"seed"`
}

// Board fallbacks used when a field is missing or zero.
const (
	DefaultBoardWidth  = 31
	DefaultBoardHeight = 31
	DefaultInitialSize = 3
	DefaultFoodValue   = 0.1
	DefaultFoodMin     = 1.0
)

// NewBoard fills in and clamps a partially specified board: dimensions and
// initial size are at least 1, food parameters are strictly positive,
// invalid walls become no walls and an empty seed becomes a random one.
func NewBoard(b Board) Board {
	out := b
	out.Width = atLeastOne(b.Width, DefaultBoardWidth)
	out.Height = atLeastOne(b.Height, DefaultBoardHeight)
	out.InitialSize = atLeastOne(b.InitialSize, DefaultInitialSize)
	out.FoodValue = positive(b.FoodValue, DefaultFoodValue)
	out.FoodMin = positive(b.FoodMin, DefaultFoodMin)
	out.Walls = walls.Sanitize(b.Walls)
	if out.Seed == "" {
		out.Seed = RandomSeed()
	}
	return out
}

func atLeastOne(v, fallback int) int {
	if v == 0 {
		v = fallback
	}
	return max(1, v)
}

func positive(v, fallback float64) float64 {
	if v == 0 || math.IsNaN(v) {
		v = fallback
	}
	return math.Max(math.SmallestNonzeroFloat64, v)
}

// RandomSeed returns a fresh seed string for unseeded boards.
func RandomSeed() string {
	return uuid.NewString()
}

// boardYAML mirrors Board with walls kept as a raw node so that a malformed
// wall list can be rejected without failing the whole document.
type boardYAML struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	InitialSize int       `yaml:"initial_size"`
	FoodValue   float64   `yaml:"food_value"`
	FoodMult    bool      `yaml:"food_mult"`
	FoodMin     float64   `yaml:"food_min"`
	Walls       yaml.Node `yaml:"walls"`
	Seed        string    `yaml:"seed"`
}

// boardOut is the serialised form: walls as [[[x, y], [x, y]], ...].
type boardOut struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	InitialSize int       `yaml:"initial_size"`
	FoodValue   float64   `yaml:"food_value"`
	FoodMult    bool      `yaml:"food_mult"`
	FoodMin     float64   `yaml:"food_min"`
	Walls       [][][]int `yaml:"walls,flow"`
	Seed        string    `yaml:"seed"`
}

// UnmarshalYAML decodes a board over the receiver's current values. Fields
// absent from the document keep their values; a wall list that is not a
// list of pairs of non-negative integer points decodes as no walls.
func (b *Board) UnmarshalYAML(value *yaml.Node) error {
	raw := boardYAML{
		Width:       b.Width,
		Height:      b.Height,
		InitialSize: b.InitialSize,
		FoodValue:   b.FoodValue,
		FoodMult:    b.FoodMult,
		FoodMin:     b.FoodMin,
		Seed:        b.Seed,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	segs := b.Walls
	if raw.Walls.Kind != 0 {
		segs = decodeWalls(&raw.Walls)
	}

	*b = Board{
		Width:       raw.Width,
		Height:      raw.Height,
		InitialSize: raw.InitialSize,
		FoodValue:   raw.FoodValue,
		FoodMult:    raw.FoodMult,
		FoodMin:     raw.FoodMin,
		Walls:       segs,
		Seed:        raw.Seed,
	}
	return nil
}

func decodeWalls(node *yaml.Node) []walls.Segment {
	var raw [][][]float64
	if err := node.Decode(&raw); err != nil {
		slog.Warn("rejecting malformed wall list", "error", err)
		return []walls.Segment{}
	}

	segs := make([]walls.Segment, 0, len(raw))
	for _, w := range raw {
		if len(w) != 2 {
			slog.Warn("rejecting malformed wall list", "segment", w)
			return []walls.Segment{}
		}
		var seg walls.Segment
		for i, p := range w {
			if len(p) != 2 || !isInt(p[0]) || !isInt(p[1]) {
				slog.Warn("rejecting malformed wall list", "segment", w)
				return []walls.Segment{}
			}
			seg[i] = coord.C(int(p[0]), int(p[1]))
		}
		segs = append(segs, seg)
	}
	return walls.Sanitize(segs)
}

func isInt(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}

// MarshalYAML encodes walls as nested integer pairs.
func (b Board) MarshalYAML() (any, error) {
	out := boardOut{
		Width:       b.Width,
		Height:      b.Height,
		InitialSize: b.InitialSize,
		FoodValue:   b.FoodValue,
		FoodMult:    b.FoodMult,
		FoodMin:     b.FoodMin,
		Walls:       make([][][]int, 0, len(b.Walls)),
		Seed:        b.Seed,
	}
	for _, s := range b.Walls {
		out.Walls = append(out.Walls, [][]int{{s[0].X, s[0].Y}, {s[1].X, s[1].Y}})
	}
	return out, nil
}

// Encode serialises a board into a compact URL-safe string.
func Encode(b Board) (string, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshaling board: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a string produced by Encode. Missing fields take the
// embedded defaults and the result is normalised with NewBoard.
func Decode(s string) (Board, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Board{}, fmt.Errorf("decoding board: %w", err)
	}

	b := Default().Board
	b.Walls = nil
	b.Seed = ""
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Board{}, fmt.Errorf("parsing board: %w", err)
	}
	return NewBoard(b), nil
}
