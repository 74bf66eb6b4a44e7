package neat

import "math/rand"

// newDeterministicRand gives tests a reproducible RNG without depending on
// package-level state.
func newDeterministicRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
