package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/arena"
	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/runner"
)

// stepWeight converts survival steps into a tie-breaker that never
// outweighs one cell of length.
const stepWeight = 1e-4

// FitnessEvaluator runs headless arenas and scores the linear policy.
type FitnessEvaluator struct {
	maxSteps   int
	seeds      []string
	baseConfig *config.Config

	mu           sync.Mutex
	lastScore    float64
	lastBaseline float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(maxSteps int, seeds []string, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		maxSteps:   maxSteps,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastScore returns the mean linear-policy score and the mean score of the
// random baselines from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() (score, baseline float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore, fe.lastBaseline
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	score    float64
	steps    int
	baseline float64
	err      error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean final length of the linear policy, with
// survival time as a small tie-breaker.
func (fe *FitnessEvaluator) Evaluate(params []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s string) {
			defer wg.Done()
			results[idx] = fe.runArena(params, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalScore, totalBaseline float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		totalFitness += -(r.score + stepWeight*float64(r.steps))
		totalScore += r.score
		totalBaseline += r.baseline
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastScore = totalScore / n
	fe.lastBaseline = totalBaseline / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runArena plays one arena on seed: the linear policy alongside the
// configured number of random baselines.
func (fe *FitnessEvaluator) runArena(params []float64, seed string) seedResult {
	cfg := fe.copyConfig()
	cfg.Board.Seed = seed
	cfg.Arena.Seed = seed
	cfg.Arena.AIs = cfg.Tune.AIs
	cfg.Arena.ParallelThreshold = 0

	entries, err := runner.Entries(cfg, &ai.WeightsFile{
		VisionDistance: cfg.Vision.Distance,
		Params:         params,
	})
	if err != nil {
		return seedResult{err: err}
	}

	a, err := arena.New(cfg.Board, cfg.Arena, entries)
	if err != nil {
		return seedResult{err: fmt.Errorf("seed %s: %w", seed, err)}
	}
	defer a.Close()

	res := a.RunUntilDone(fe.maxSteps, nil)

	var r seedResult
	var baselineSum float64
	for _, v := range res.Runs {
		if v.Name == runner.LinearName {
			r.score = float64(v.Score())
			r.steps = v.Steps(res.CurrentStep)
			continue
		}
		baselineSum += float64(v.Score())
	}
	if cfg.Tune.AIs > 0 {
		r.baseline = baselineSum / float64(cfg.Tune.AIs)
	}
	return r
}

// copyConfig returns a copy of the base config with its own wall slice.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Board.Walls = append(cfg.Board.Walls[:0:0], fe.baseConfig.Board.Walls...)
	return &cfg
}
