package game

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/exp/rand"
)

// NewRNG returns a random stream fully determined by seed. Each engine and
// each policy owns its own stream; nothing here touches global state.
func NewRNG(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	return rand.New(rand.NewSource(binary.LittleEndian.Uint64(sum[:8])))
}
