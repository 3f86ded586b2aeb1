package ai

import (
	"golang.org/x/exp/rand"

	"github.com/pthm-cable/snek/game"
)

// RandomBrain is a weighted coin over the three decisions, derived
// entirely from its seed string.
type RandomBrain struct {
	Seed    string                `json:"seed"`
	Weights [NumDecisions]float64 `json:"weights"`
}

// BrainFromName derives a brain from a name: the weights for None, Left
// and Right are the first three draws of the name's stream.
func BrainFromName(name string) RandomBrain {
	rng := game.NewRNG(name)
	var b RandomBrain
	b.Seed = name
	for i := range b.Weights {
		b.Weights[i] = rng.Float64()
	}
	return b
}

// Sum returns the total weight.
func (b RandomBrain) Sum() float64 {
	var sum float64
	for _, w := range b.Weights {
		sum += w
	}
	return sum
}

// RandomPolicy ignores the state and samples the brain's weights.
type RandomPolicy struct {
	brain RandomBrain
	rng   *rand.Rand
}

// NewRandomPolicy creates a policy with its own stream seeded by the
// brain's seed. The stream restarts from the beginning, so its first
// draws repeat the values BrainFromName turned into weights.
func NewRandomPolicy(brain RandomBrain) *RandomPolicy {
	return &RandomPolicy{
		brain: brain,
		rng:   game.NewRNG(brain.Seed),
	}
}

// Brain returns the policy's brain.
func (p *RandomPolicy) Brain() RandomBrain {
	return p.brain
}

// Decide draws one value per call.
func (p *RandomPolicy) Decide(game.State) Decision {
	return pick(p.brain.Weights, p.rng.Float64()*p.brain.Sum())
}

// pick walks the categories in order and returns the first whose weight
// covers num. None is the fallback when rounding leaves num uncovered.
func pick(weights [NumDecisions]float64, num float64) Decision {
	for i, w := range weights {
		if num <= w {
			return Decision(i)
		}
		num -= w
	}
	return None
}
