package world

import "math/rand"

// Source is the seeded value source every randomized step draws from.
// Two sources built from the same seed and consumed in the same order
// yield identical values, which is what makes a layout reproducible.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// NewSource creates a value source for seed.
func NewSource(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was built from.
func (s *Source) Seed() int64 {
	return s.seed
}

// Uniform returns an int in [low, high). It panics if high <= low,
// matching rand.Intn on an empty range.
func (s *Source) Uniform(low, high int) int {
	return low + s.rng.Intn(high-low)
}
