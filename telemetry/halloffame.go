package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/arena"
)

// HallEntry records a finished run and enough of its policy to replay it.
type HallEntry struct {
	Name      string          `json:"name"`
	Score     int             `json:"score"`
	Steps     int             `json:"steps"`
	Exhausted bool            `json:"exhausted"`
	Brain     *ai.RandomBrain `json:"brain,omitempty"`
	Params    []float64       `json:"params,omitempty"`
}

// NewHallEntry builds an entry from a run and the policy that played it.
// A run that has not ended is credited with currentStep steps.
func NewHallEntry(v arena.RunView, currentStep int, policy ai.Policy) HallEntry {
	entry := HallEntry{
		Name:      v.Name,
		Score:     v.Score(),
		Steps:     v.Steps(currentStep),
		Exhausted: v.Exhausted,
	}
	switch p := policy.(type) {
	case *ai.RandomPolicy:
		brain := p.Brain()
		entry.Brain = &brain
	case *ai.LinearPolicy:
		entry.Params = p.Params()
	}
	return entry
}

// better reports whether a ranks above b: higher score first, then the
// run that got there in fewer steps.
func better(a, b HallEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Steps < b.Steps
}

// HallOfFame keeps the best runs seen so far.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider adds entry if it ranks among the best. Returns true if it was
// added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	// Find insertion point (sorted best first); equal entries keep arrival order
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return better(entry, hof.entries[i])
	})

	// If hall is full and entry would be last, skip it
	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns a copy of the entries, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	out := make([]HallEntry, len(hof.entries))
	copy(out, hof.entries)
	return out
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopScore returns the best score, or 0 if the hall is empty.
func (hof *HallOfFame) TopScore() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Score
}

// hallOfFameJSON is the on-disk layout.
type hallOfFameJSON struct {
	MaxSize int         `json:"max_size"`
	Entries []HallEntry `json:"entries"`
}

// MarshalJSON serializes the hall of fame.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hallOfFameJSON{
		MaxSize: hof.maxSize,
		Entries: hof.entries,
	}, "", "  ")
}

// LoadHallOfFameFromFile reads a hall of fame written by MarshalJSON.
func LoadHallOfFameFromFile(path string) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw hallOfFameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame: %w", err)
	}

	hof := NewHallOfFame(raw.MaxSize)
	for _, e := range raw.Entries {
		hof.Consider(e)
	}
	return hof, nil
}
