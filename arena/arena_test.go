package arena

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/coord"
	"github.com/pthm-cable/snek/game"
	"github.com/pthm-cable/snek/walls"
)

func testBoard(w, h int, seed string) config.Board {
	return config.Board{
		Width:       w,
		Height:      h,
		InitialSize: 3,
		FoodValue:   0.1,
		FoodMult:    true,
		FoodMin:     1,
		Seed:        seed,
	}
}

func always(d ai.Decision) ai.Policy {
	return ai.PolicyFunc(func(game.State) ai.Decision { return d })
}

func TestAdvanceGameOverUnchanged(t *testing.T) {
	r := Run{
		Engine: game.New(testBoard(5, 5, "a")),
		Policy: always(ai.Right),
		State:  game.State{SnakeParts: []coord.Coord{{1, 1}}, Direction: game.Up, GameOver: true},
	}
	got := Advance(r, 0, 100)
	if got.State.Direction != game.Up || got.State.Head() != coord.C(1, 1) || got.Exhausted {
		t.Errorf("finished run changed: %+v", got)
	}
}

func TestAdvanceBudget(t *testing.T) {
	base := Run{
		Engine: game.New(testBoard(9, 9, "b")),
		Policy: always(ai.None),
		State: game.State{
			SnakeParts: []coord.Coord{{4, 4}, {4, 5}},
			Direction:  game.Up,
			Food:       coord.C(0, 8),
		},
	}

	at := Advance(base, 20, 10)
	if at.State.GameOver || at.Exhausted {
		t.Fatalf("step equal to budget ended the run: %+v", at)
	}
	if at.RemainingSteps != 0 {
		t.Errorf("RemainingSteps = %d, want 0", at.RemainingSteps)
	}

	early := Advance(base, 5, 10)
	if early.RemainingSteps != 15 {
		t.Errorf("RemainingSteps = %d, want 15", early.RemainingSteps)
	}

	over := Advance(base, 21, 10)
	if !over.State.GameOver || !over.Exhausted {
		t.Fatalf("step beyond budget did not exhaust the run: %+v", over)
	}
	if over.State.Head() != coord.C(4, 4) {
		t.Errorf("exhausted run moved to %v", over.State.Head())
	}
}

func TestAdvanceAppliesDecision(t *testing.T) {
	base := Run{
		Engine: game.New(testBoard(9, 9, "c")),
		State: game.State{
			SnakeParts: []coord.Coord{{4, 4}, {4, 5}, {4, 6}},
			Direction:  game.Up,
			Food:       coord.C(0, 0),
		},
	}

	tests := []struct {
		d        ai.Decision
		wantDir  game.Direction
		wantHead coord.Coord
	}{
		{ai.None, game.Up, coord.C(4, 3)},
		{ai.Left, game.Left, coord.C(3, 4)},
		{ai.Right, game.Right, coord.C(5, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			r := base
			r.Policy = always(tt.d)
			got := Advance(r, 0, 100)
			if got.State.Direction != tt.wantDir {
				t.Errorf("direction = %v, want %v", got.State.Direction, tt.wantDir)
			}
			if got.State.Head() != tt.wantHead {
				t.Errorf("head = %v, want %v", got.State.Head(), tt.wantHead)
			}
			if len(got.State.SnakeParts) != 3 {
				t.Errorf("length = %d, want 3", len(got.State.SnakeParts))
			}
			if base.State.SnakeParts[0] != coord.C(4, 4) {
				t.Error("Advance modified the input state")
			}
		})
	}
}

func TestNewInvalidMap(t *testing.T) {
	board := testBoard(2, 2, "d")
	board.Walls = []walls.Segment{walls.Seg(0, 0, 1, 1)}

	_, err := New(board, config.ArenaConfig{StepsPerLength: 10}, RandomEntries("d", 2))
	if !errors.Is(err, game.ErrInvalidMap) {
		t.Errorf("expected ErrInvalidMap, got %v", err)
	}
}

func TestNewSharedStart(t *testing.T) {
	a, err := New(testBoard(11, 11, "e"), config.ArenaConfig{StepsPerLength: 10}, RandomEntries("e", 4))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	runs := a.Runs()
	if len(runs) != 4 || a.Len() != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	for i, r := range runs {
		if r.Index != i {
			t.Errorf("run %d has index %d", i, r.Index)
		}
		if r.RemainingSteps != 10 {
			t.Errorf("initial RemainingSteps = %d, want 10", r.RemainingSteps)
		}
		if r.State.Head() != runs[0].State.Head() || r.State.Food != runs[0].State.Food {
			t.Errorf("run %d spawned differently from run 0", i)
		}
	}
}

func TestRunUntilDone(t *testing.T) {
	const spl = 2
	a, err := New(testBoard(10, 10, "f"), config.ArenaConfig{StepsPerLength: spl}, RandomEntries("f", 6))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	steps := 0
	res := a.RunUntilDone(0, func(StepResult) { steps++ })
	if res.HasRunning {
		t.Fatal("RunUntilDone returned with games still running")
	}
	if res.CurrentStep > 100*spl+2 {
		t.Errorf("CurrentStep %d exceeds the largest possible budget", res.CurrentStep)
	}
	if steps != res.CurrentStep+1 {
		t.Errorf("observed %d steps for counter %d", steps, res.CurrentStep)
	}

	for _, r := range res.Runs {
		if !r.State.GameOver {
			t.Errorf("run %s still running", r.Name)
		}
		if r.FinishedAt < 1 || r.FinishedAt > res.CurrentStep {
			t.Errorf("run %s FinishedAt = %d", r.Name, r.FinishedAt)
		}
		if r.Exhausted && r.FinishedAt-1 <= r.Score()*spl {
			t.Errorf("run %s exhausted at step %d within budget %d", r.Name, r.FinishedAt-1, r.Score()*spl)
		}
	}

	again := a.Step()
	if again.HasRunning || again.CurrentStep != res.CurrentStep {
		t.Errorf("step after completion moved the counter: %+v", again)
	}
}

func TestRunUntilDoneCap(t *testing.T) {
	a, err := New(testBoard(31, 31, "g"), config.ArenaConfig{StepsPerLength: 100}, RandomEntries("g", 3))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	res := a.RunUntilDone(5, nil)
	if res.CurrentStep > 5 {
		t.Errorf("CurrentStep = %d, want at most 5", res.CurrentStep)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	run := func(threshold int) StepResult {
		a, err := New(testBoard(12, 12, "h"),
			config.ArenaConfig{StepsPerLength: 5, ParallelThreshold: threshold},
			RandomEntries("h", 24))
		if err != nil {
			t.Fatal(err)
		}
		defer a.Close()
		return a.RunUntilDone(0, nil)
	}

	serial := run(0)
	parallel := run(1)

	if serial.CurrentStep != parallel.CurrentStep {
		t.Fatalf("step counters differ: %d vs %d", serial.CurrentStep, parallel.CurrentStep)
	}
	for i := range serial.Runs {
		s, p := serial.Runs[i], parallel.Runs[i]
		if s.Name != p.Name || s.Score() != p.Score() || s.FinishedAt != p.FinishedAt || s.Exhausted != p.Exhausted {
			t.Errorf("run %d differs: serial %+v, parallel %+v", i, s, p)
		}
	}
}

func TestNames(t *testing.T) {
	a := Names("seed", 5)
	b := Names("seed", 5)
	seen := make(map[string]bool)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("name %d differs between calls: %s vs %s", i, a[i], b[i])
		}
		if seen[a[i]] {
			t.Errorf("duplicate name %s", a[i])
		}
		seen[a[i]] = true
	}

	if c := Names("other", 1); c[0] == a[0] {
		t.Error("different seeds gave the same first name")
	}

	for _, n := range Names("", 3) {
		if _, err := uuid.Parse(n); err != nil {
			t.Errorf("random name %q is not a UUID: %v", n, err)
		}
	}
}
