package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/runner"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	board := flag.String("board", "", "Encoded board string (overrides config board)")
	seed := flag.String("seed", "", "Board seed (empty = config or random)")
	wallsPreset := flag.String("walls", "", "Walls preset: corners, cross, full, no")
	ais := flag.Int("ais", 0, "Number of random AIs (0 = use config)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N arena steps (0 = until all games end)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	visionDistance := flag.Int("vision", 0, "Vision distance for the linear policy (0 = weights file or config)")
	weightsPath := flag.String("weights", "", "Tuned linear policy weights (adds one linear AI)")
	printBoard := flag.Bool("print-board", false, "Print the encoded board and exit")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *board != "" {
		b, err := config.Decode(*board)
		if err != nil {
			slog.Error("failed to decode board", "error", err)
			os.Exit(1)
		}
		cfg.Board = b
	}
	if *seed != "" {
		cfg.Board.Seed = *seed
	}
	if *wallsPreset != "" {
		if err := cfg.ApplyWallsPreset(*wallsPreset); err != nil {
			slog.Error("invalid walls preset", "error", err)
			os.Exit(1)
		}
	}
	if *ais > 0 {
		cfg.Arena.AIs = *ais
	}
	if *visionDistance > 0 {
		cfg.Vision.Distance = *visionDistance
	}

	if *printBoard {
		s, err := config.Encode(cfg.Board)
		if err != nil {
			slog.Error("failed to encode board", "error", err)
			os.Exit(1)
		}
		fmt.Println(s)
		return
	}

	var weights *ai.WeightsFile
	if *weightsPath != "" {
		w, err := ai.LoadWeights(*weightsPath)
		if err != nil {
			slog.Error("failed to load weights", "error", err)
			os.Exit(1)
		}
		if *visionDistance > 0 {
			w.VisionDistance = *visionDistance
		}
		weights = &w
	}

	entries, err := runner.Entries(cfg, weights)
	if err != nil {
		slog.Error("failed to build entries", "error", err)
		os.Exit(1)
	}

	r, err := runner.New(cfg, entries, runner.Options{
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create arena", "error", err)
		os.Exit(1)
	}

	slog.Info("starting arena",
		"seed", cfg.Board.Seed,
		"width", cfg.Board.Width,
		"height", cfg.Board.Height,
		"walls", len(cfg.Board.Walls),
		"ais", len(entries),
		"max_steps", *maxSteps,
	)

	res, runErr := r.Run(*maxSteps)
	if err := r.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if runErr != nil {
		slog.Error("arena failed", "error", runErr)
		os.Exit(1)
	}

	for _, e := range r.HallOfFame().Entries() {
		slog.Info("hall of fame", "name", e.Name, "score", e.Score, "steps", e.Steps, "exhausted", e.Exhausted)
	}
	slog.Info("done", "steps", res.CurrentStep)
}
