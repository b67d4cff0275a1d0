package cache

import "math/rand/v2"

// RandSource supplies random line indices to the Random policy.
type RandSource interface {
	// IntN returns a uniformly distributed integer in [0, n).
	IntN(n int) int
}

// NewRand returns a source seeded from the runtime. Its output differs from
// run to run.
func NewRand() RandSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic source for the given seed.
func NewSeededRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
