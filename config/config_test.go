package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pthm-cable/snek/walls"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	b := cfg.Board
	if b.Width != 31 || b.Height != 31 {
		t.Errorf("expected 31x31 board, got %dx%d", b.Width, b.Height)
	}
	if b.InitialSize != 3 || b.FoodValue != 0.1 || !b.FoodMult || b.FoodMin != 1 {
		t.Errorf("unexpected growth defaults: %+v", b)
	}
	if len(b.Walls) != 0 {
		t.Errorf("expected no walls, got %v", b.Walls)
	}
	if b.Seed == "" {
		t.Error("expected a generated seed")
	}
	if cfg.Arena.AIs != 8 || cfg.Arena.StepsPerLength != 100 {
		t.Errorf("unexpected arena defaults: %+v", cfg.Arena)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
board:
  width: 12
  seed: fixed
walls_preset: full
arena:
  ais: 3
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 31 {
		t.Errorf("overlay dims = %dx%d, want 12x31", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Board.Seed != "fixed" {
		t.Errorf("seed = %q, want fixed", cfg.Board.Seed)
	}
	if !reflect.DeepEqual(cfg.Board.Walls, walls.Full(12, 31)) {
		t.Errorf("expected full preset walls, got %v", cfg.Board.Walls)
	}
	if cfg.Arena.AIs != 3 || cfg.Arena.StepsPerLength != 100 {
		t.Errorf("arena overlay = %+v", cfg.Arena)
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("walls_preset: spiral\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown walls preset")
	}
}

func TestLoadMalformedWallsFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
board:
  walls: [[[0, 0], [2, -1]]]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Board.Walls) != 0 {
		t.Errorf("expected negative wall to be rejected, got %v", cfg.Board.Walls)
	}
}

func TestNewBoardClamps(t *testing.T) {
	b := NewBoard(Board{Width: -4, InitialSize: 0, FoodValue: -2})
	if b.Width != 1 {
		t.Errorf("width = %d, want 1", b.Width)
	}
	if b.Height != DefaultBoardHeight {
		t.Errorf("height = %d, want %d", b.Height, DefaultBoardHeight)
	}
	if b.InitialSize != DefaultInitialSize {
		t.Errorf("initial size = %d, want %d", b.InitialSize, DefaultInitialSize)
	}
	if b.FoodValue <= 0 {
		t.Errorf("food value = %v, want > 0", b.FoodValue)
	}
	if b.FoodMin != DefaultFoodMin {
		t.Errorf("food min = %v, want %v", b.FoodMin, DefaultFoodMin)
	}
	if b.Seed == "" {
		t.Error("expected a generated seed")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := NewBoard(Board{
		Width:       20,
		Height:      15,
		InitialSize: 4,
		FoodValue:   0.25,
		FoodMult:    false,
		FoodMin:     2,
		Walls:       walls.Cross(20, 15),
		Seed:        "round-trip",
	})

	s, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func TestDecodeFillsDefaults(t *testing.T) {
	s := base64.RawURLEncoding.EncodeToString([]byte("width: 9\nseed: abc\n"))
	b, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b.Width != 9 || b.Height != DefaultBoardHeight || b.Seed != "abc" {
		t.Errorf("unexpected board: %+v", b)
	}
	if !b.FoodMult {
		t.Error("expected food_mult default true")
	}
}

func TestDecodeRejectsBadWalls(t *testing.T) {
	docs := []string{
		"walls: [[[0, 0], [1.5, 2]]]\n",
		"walls: [[[0, 0]]]\n",
		"walls: [[[0, 0, 0], [1, 1]]]\n",
		"walls: not-a-list\n",
		"walls: [[[-3, 0], [1, 1]]]\n",
	}
	for _, doc := range docs {
		b, err := Decode(base64.RawURLEncoding.EncodeToString([]byte(doc)))
		if err != nil {
			t.Errorf("%q: unexpected error %v", doc, err)
			continue
		}
		if len(b.Walls) != 0 {
			t.Errorf("%q: expected no walls, got %v", doc, b.Walls)
		}
	}
}

func TestDecodeInvalidEncoding(t *testing.T) {
	if _, err := Decode("!!not base64!!"); err == nil {
		t.Error("expected error for invalid encoding")
	}
}

func TestWriteYAML(t *testing.T) {
	cfg := Default()
	cfg.Board.Walls = walls.Corners(cfg.Board.Width, cfg.Board.Height)
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Board, cfg.Board) {
		t.Errorf("board mismatch after reload:\n got=%+v\nwant=%+v", loaded.Board, cfg.Board)
	}
}
