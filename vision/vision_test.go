package vision

import (
	"testing"

	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/coord"
	"github.com/pthm-cable/snek/game"
	"github.com/pthm-cable/snek/walls"
)

func board(w, h int, segs ...walls.Segment) config.Board {
	return config.Board{
		Width:       w,
		Height:      h,
		InitialSize: 1,
		FoodValue:   0.1,
		FoodMult:    true,
		FoodMin:     1,
		Walls:       segs,
		Seed:        "vision",
	}
}

func TestDirections(t *testing.T) {
	got := Directions(game.Right)
	want := [NumRays]coord.Coord{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}
	if got != want {
		t.Errorf("Directions(Right) = %v, want %v", got, want)
	}

	up := Directions(game.Up)
	if up[RayRight] != game.Right || up[RayLeft] != game.Left || up[RayBack] != game.Down {
		t.Errorf("Directions(Up) axes = %v", up)
	}
}

func TestSeeFoodAndTail(t *testing.T) {
	s := New(board(10, 10), 4)
	parts := []coord.Coord{{5, 5}, {4, 5}, {3, 5}}
	r := s.See(parts, game.Right, coord.C(8, 5))

	if len(r) != NumInputs {
		t.Fatalf("expected %d values, got %d", NumInputs, len(r))
	}
	if got := r.At(RayForward, ChannelFood); got != 3 {
		t.Errorf("forward food = %v, want 3", got)
	}
	if got := r.At(RayForward, ChannelTail); got != 0 {
		t.Errorf("forward tail = %v, want 0", got)
	}
	if got := r.At(RayBack, ChannelTail); got != 1 {
		t.Errorf("back tail = %v, want 1", got)
	}
	if got := r.At(RayBack, ChannelFood); got != 0 {
		t.Errorf("back food = %v, want 0", got)
	}
	for ray := 0; ray < NumRays; ray++ {
		if got := r.At(ray, ChannelWall); got != 0 {
			t.Errorf("ray %d saw a wall on an open board: %v", ray, got)
		}
	}
}

func TestSeeOutOfRange(t *testing.T) {
	s := New(board(20, 20), 2)
	r := s.See([]coord.Coord{{5, 5}}, game.Right, coord.C(9, 5))
	if got := r.At(RayForward, ChannelFood); got != 0 {
		t.Errorf("food beyond range reported at %v", got)
	}
}

func TestSeeWrapsAround(t *testing.T) {
	s := New(board(5, 5), 4)
	r := s.See([]coord.Coord{{0, 0}}, game.Left, coord.C(3, 0))
	if got := r.At(RayForward, ChannelFood); got != 2 {
		t.Errorf("wrapped food = %v, want 2", got)
	}
}

func TestSeeDiagonalWall(t *testing.T) {
	s := New(board(5, 5, walls.Seg(1, 4, 1, 4)), 3)
	r := s.See([]coord.Coord{{0, 0}}, game.Up, coord.C(2, 2))
	if got := r.At(RayForwardRight, ChannelWall); got != 1 {
		t.Errorf("forward-right wall = %v, want 1", got)
	}
	if got := r.At(RayForwardLeft, ChannelWall); got != 0 {
		t.Errorf("forward-left wall = %v, want 0", got)
	}
}

func TestSeeRecordsFirstHitOnly(t *testing.T) {
	s := New(board(12, 3, walls.Seg(3, 0, 3, 2), walls.Seg(6, 0, 6, 2)), 10)
	r := s.See([]coord.Coord{{0, 1}}, game.Right, coord.C(11, 1))
	if got := r.At(RayForward, ChannelWall); got != 3 {
		t.Errorf("wall = %v, want first hit 3", got)
	}
}

func TestSeeWithinRange(t *testing.T) {
	cfg := board(9, 7, walls.Corners(9, 7)...)
	const d = 5
	s := New(cfg, d)
	e := game.New(cfg)

	st, err := e.Spawn()
	if err != nil {
		t.Fatal(err)
	}
	turns := []game.Direction{game.Up, game.Left, game.Down, game.Right}
	for i := 0; i < 300 && !st.GameOver; i++ {
		if i%7 == 0 {
			st = e.Turn(st, turns[(i/7)%4])
		}
		before := st.Clone()
		r := s.SeeState(st)
		for j, v := range r {
			if v < 0 || v > d {
				t.Fatalf("value %d = %v outside [0,%d]", j, v, d)
			}
		}
		for j := range before.SnakeParts {
			if before.SnakeParts[j] != st.SnakeParts[j] {
				t.Fatal("See modified the snake")
			}
		}
		st = e.Step(st)
	}
}

func TestSeeEmptySnake(t *testing.T) {
	r := New(board(5, 5), 3).See(nil, game.Up, coord.C(1, 1))
	for _, v := range r {
		if v != 0 {
			t.Fatalf("expected zeros for an empty snake, got %v", r)
		}
	}
}
