package telemetry

import "github.com/pthm-cable/snek/arena"

// RunResult is one row of results.csv.
type RunResult struct {
	ArenaID   string `csv:"arena_id"`
	Seed      string `csv:"seed"`
	Index     int    `csv:"index"`
	Name      string `csv:"name"`
	Score     int    `csv:"score"`
	Steps     int    `csv:"steps"`
	Exhausted bool   `csv:"exhausted"`
}

// Results converts run views into result rows. Runs still going at
// currentStep are credited with currentStep steps.
func Results(arenaID, seed string, currentStep int, runs []arena.RunView) []RunResult {
	out := make([]RunResult, len(runs))
	for i, v := range runs {
		out[i] = RunResult{
			ArenaID:   arenaID,
			Seed:      seed,
			Index:     v.Index,
			Name:      v.Name,
			Score:     v.Score(),
			Steps:     v.Steps(currentStep),
			Exhausted: v.Exhausted,
		}
	}
	return out
}
