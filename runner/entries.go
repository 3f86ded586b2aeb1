package runner

import (
	"fmt"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/arena"
	"github.com/pthm-cable/snek/config"
	"github.com/pthm-cable/snek/vision"
)

// LinearName is the entry name given to a tuned linear policy.
const LinearName = "linear"

// Entries builds the arena participants: cfg.Arena.AIs random policies
// named from cfg.Arena.Seed, plus one linear policy when weights is set.
func Entries(cfg *config.Config, weights *ai.WeightsFile) ([]arena.Entry, error) {
	entries := arena.RandomEntries(cfg.Arena.Seed, cfg.Arena.AIs)
	if weights == nil {
		return entries, nil
	}

	distance := weights.VisionDistance
	if distance < 1 {
		distance = cfg.Vision.Distance
	}
	lp, err := ai.NewLinearPolicy(vision.New(cfg.Board, distance), weights.Params)
	if err != nil {
		return nil, fmt.Errorf("building linear policy: %w", err)
	}
	return append(entries, arena.Entry{Name: LinearName, Policy: lp}), nil
}
