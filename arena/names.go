package arena

import (
	"github.com/google/uuid"

	"github.com/pthm-cable/snek/ai"
	"github.com/pthm-cable/snek/game"
)

// Names returns n participant names. A non-empty seed always yields the
// same names; an empty seed yields random ones.
func Names(seed string, n int) []string {
	names := make([]string, n)
	if seed == "" {
		for i := range names {
			names[i] = uuid.NewString()
		}
		return names
	}

	rng := game.NewRNG(seed)
	for i := range names {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			// x/exp/rand never fails a Read
			panic(err)
		}
		names[i] = id.String()
	}
	return names
}

// RandomEntries builds n random-policy entries with names from Names.
func RandomEntries(seed string, n int) []Entry {
	names := Names(seed, n)
	entries := make([]Entry, n)
	for i, name := range names {
		entries[i] = Entry{
			Name:   name,
			Policy: ai.NewRandomPolicy(ai.BrainFromName(name)),
		}
	}
	return entries
}
