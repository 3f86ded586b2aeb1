package arena

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"
)

// runSnapshot pairs a run with the entity it came from.
type runSnapshot struct {
	Entity ecs.Entity
	Run    Run
}

// workChunk is a range of snapshots for one worker.
type workChunk struct {
	start, end int
	step       int
}

// parallelState holds the worker pool used by large arenas.
type parallelState struct {
	snapshots  []runSnapshot
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]runSnapshot, 0, 64),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(a *Arena) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(a)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *parallelState) worker(a *Arena) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			a.computeChunk(chunk.start, chunk.end, chunk.step)
			p.doneChan <- struct{}{}
		}
	}
}

// advanceAll snapshots the running games, advances them, then writes the
// results back. Each run touches only its own engine and policy, so the
// outcome does not depend on how runs are split across workers.
func (a *Arena) advanceAll() {
	// Phase A: snapshot
	a.parallel.snapshots = a.parallel.snapshots[:0]

	query := a.filter.Query()
	for query.Next() {
		id, ctrl, prog := query.Get()
		if prog.State.GameOver {
			continue
		}
		a.parallel.snapshots = append(a.parallel.snapshots, runSnapshot{
			Entity: query.Entity(),
			Run: Run{
				Name:           id.Name,
				Engine:         ctrl.Engine,
				Policy:         ctrl.Policy,
				State:          prog.State,
				RemainingSteps: prog.RemainingSteps,
				Exhausted:      prog.Exhausted,
			},
		})
	}

	n := len(a.parallel.snapshots)
	if n == 0 {
		return
	}

	// Phase B: compute
	if a.threshold <= 0 || n < a.threshold {
		a.computeChunk(0, n, a.currentStep)
	} else {
		a.computeParallel(n, a.currentStep)
	}

	// Phase C: apply
	a.applySnapshots()
}

// computeParallel dispatches chunks to the worker pool and waits.
func (a *Arena) computeParallel(n, step int) {
	if !a.parallel.running {
		a.parallel.startWorkers(a)
	}

	numWorkers := a.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	dispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		a.parallel.workChan <- workChunk{start: start, end: end, step: step}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-a.parallel.doneChan
	}
}

func (a *Arena) computeChunk(i0, i1, step int) {
	for i := i0; i < i1; i++ {
		snap := &a.parallel.snapshots[i]
		snap.Run = Advance(snap.Run, step, a.stepsPerLength)
	}
}

// applySnapshots writes advanced runs back to their entities.
func (a *Arena) applySnapshots() {
	for _, snap := range a.parallel.snapshots {
		id, _, prog := a.mapper.Get(snap.Entity)
		if prog == nil {
			continue
		}

		prog.State = snap.Run.State
		prog.RemainingSteps = snap.Run.RemainingSteps
		prog.Exhausted = snap.Run.Exhausted

		if prog.State.GameOver {
			prog.FinishedAt = a.currentStep + 1
			a.logger.Debug("run finished",
				"name", id.Name,
				"score", len(prog.State.SnakeParts),
				"exhausted", prog.Exhausted,
				"step", prog.FinishedAt,
			)
		}
	}
}
