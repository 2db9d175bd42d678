package stack

import "math/rand/v2"

// Random is the source of per-session randomness (hue seed and direction).
// *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
}

// NewRand returns a deterministic PCG-backed source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
