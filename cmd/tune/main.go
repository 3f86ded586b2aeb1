// Package main tunes the linear snake policy with CMA-ES.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/config"
)

// logRow is one line of tune_log.csv.
type logRow struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Score    float64 `csv:"score"`
	Baseline float64 `csv:"baseline"`
	Best     float64 `csv:"best"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 0, "Number of board seeds per evaluation (0 = use config)")
	maxSteps := flag.Int("max-steps", 0, "Arena step cap per evaluation (0 = use config)")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Arena and engine logging is too chatty for thousands of runs
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	numSeeds := baseCfg.Tune.Seeds
	if *seeds > 0 {
		numSeeds = *seeds
	}
	steps := baseCfg.Tune.MaxSteps
	if *maxSteps > 0 {
		steps = *maxSteps
	}

	evalSeeds := make([]string, max(1, numSeeds))
	for i := range evalSeeds {
		evalSeeds[i] = fmt.Sprintf("tune-%d", i)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(steps, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Clamp(params.Denormalize(x)))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: baseCfg.Tune.InitStepSize,
		Population:   popSize,
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		score, baseline := evaluator.LastScore()
		rows := []logRow{{Eval: evalCount, Fitness: fitness, Score: score, Baseline: baseline, Best: bestFitness}}
		if !headerWritten {
			err = gocsv.Marshal(rows, logFile)
			headerWritten = true
		} else {
			err = gocsv.MarshalWithoutHeaders(rows, logFile)
		}
		if err != nil {
			log.Printf("failed to write log row: %v", err)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: score=%.2f baseline=%.2f (best=%.3f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, score, baseline, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, steps per arena: %d\n", len(evalSeeds), steps)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.3f\n", bestFitness)

	weightsPath := filepath.Join(*outputDir, "best_weights.json")
	if err := ai.SaveWeights(weightsPath, ai.WeightsFile{
		VisionDistance: baseCfg.Vision.Distance,
		Fitness:        bestFitness,
		Params:         bestParams,
	}); err != nil {
		log.Printf("failed to write best weights: %v", err)
	} else {
		fmt.Printf("Best weights saved to: %s\n", weightsPath)
	}

	configOutPath := filepath.Join(*outputDir, "config.yaml")
	if err := baseCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write config: %v", err)
	}
}
