// Package arena runs many AI-controlled games side by side on the same
// board under a shared step budget.
package arena

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/game"
)

// Entry describes one participant.
type Entry struct {
	Name   string
	Policy ai.Policy
}

// RunView is a read-only copy of a run after a step.
type RunView struct {
	Index          int
	Name           string
	State          game.State
	RemainingSteps int
	Exhausted      bool
	FinishedAt     int
}

// Score is the body length.
func (v RunView) Score() int {
	return len(v.State.SnakeParts)
}

// Steps is how long the run lasted: the step it finished on, or
// currentStep while it is still running.
func (v RunView) Steps(currentStep int) int {
	if !v.State.GameOver {
		return currentStep
	}
	return v.FinishedAt
}

// StepResult is returned by every call to Step.
type StepResult struct {
	CurrentStep int
	HasRunning  bool
	Runs        []RunView
}

// Arena owns the runs. It is driven from a single goroutine; Step fans
// work out internally.
type Arena struct {
	ID string

	world  *ecs.World
	mapper *ecs.Map3[Identity, Controller, Progress]
	filter *ecs.Filter3[Identity, Controller, Progress]

	entities       []ecs.Entity
	stepsPerLength int
	threshold      int
	currentStep    int

	parallel *parallelState
	logger   *slog.Logger
}

// New spawns one game per entry. Every game uses the same board and seed,
// so all participants start from the same position.
func New(board config.Board, cfg config.ArenaConfig, entries []Entry) (*Arena, error) {
	world := ecs.NewWorld()

	a := &Arena{
		ID:             uuid.NewString(),
		world:          world,
		mapper:         ecs.NewMap3[Identity, Controller, Progress](world),
		filter:         ecs.NewFilter3[Identity, Controller, Progress](world),
		stepsPerLength: max(1, cfg.StepsPerLength),
		threshold:      cfg.ParallelThreshold,
		parallel:       newParallelState(),
	}
	a.logger = slog.Default().With("arena", a.ID)

	for i, entry := range entries {
		engine := game.New(board)
		state, err := engine.Spawn()
		if err != nil {
			return nil, fmt.Errorf("spawning %q: %w", entry.Name, err)
		}

		id := Identity{Index: i, Name: entry.Name}
		ctrl := Controller{Engine: engine, Policy: entry.Policy}
		prog := Progress{
			State:          state,
			RemainingSteps: len(state.SnakeParts) * a.stepsPerLength,
		}
		a.entities = append(a.entities, a.mapper.NewEntity(&id, &ctrl, &prog))
	}

	a.logger.Info("arena created",
		"runs", len(entries),
		"width", board.Width,
		"height", board.Height,
		"seed", board.Seed,
		"steps_per_length", a.stepsPerLength,
	)
	return a, nil
}

// CurrentStep returns the number of steps taken while some game was running.
func (a *Arena) CurrentStep() int {
	return a.currentStep
}

// Len returns the number of runs.
func (a *Arena) Len() int {
	return len(a.entities)
}

// HasRunning reports whether any game is still in progress.
func (a *Arena) HasRunning() bool {
	query := a.filter.Query()
	for query.Next() {
		_, _, prog := query.Get()
		if !prog.State.GameOver {
			query.Close()
			return true
		}
	}
	return false
}

// Step advances every running game once. The step counter only moves
// while at least one game was running at the start of the call.
func (a *Arena) Step() StepResult {
	hasRunning := a.HasRunning()
	if hasRunning {
		a.advanceAll()
		a.currentStep++
	}
	return StepResult{
		CurrentStep: a.currentStep,
		HasRunning:  hasRunning,
		Runs:        a.Runs(),
	}
}

// Runs returns views of all runs in entry order.
func (a *Arena) Runs() []RunView {
	views := make([]RunView, 0, len(a.entities))
	query := a.filter.Query()
	for query.Next() {
		id, _, prog := query.Get()
		views = append(views, RunView{
			Index:          id.Index,
			Name:           id.Name,
			State:          prog.State.Clone(),
			RemainingSteps: prog.RemainingSteps,
			Exhausted:      prog.Exhausted,
			FinishedAt:     prog.FinishedAt,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Index < views[j].Index })
	return views
}

// RunUntilDone steps until every game has ended or maxSteps steps have
// been taken (maxSteps <= 0 means no cap). onStep, if set, sees every
// result.
func (a *Arena) RunUntilDone(maxSteps int, onStep func(StepResult)) StepResult {
	var res StepResult
	for {
		res = a.Step()
		if onStep != nil {
			onStep(res)
		}
		if !res.HasRunning || (maxSteps > 0 && res.CurrentStep >= maxSteps) {
			return res
		}
	}
}

// Close stops the worker pool.
func (a *Arena) Close() {
	a.parallel.stopWorkers()
}
