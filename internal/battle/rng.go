package battle

import "math/rand"

// Source is the randomness provider for one battle.
// Every probabilistic draw of a battle comes from a single Source, in a
// fixed order, so a seeded replay is identical.
//
// A Source is owned by one battle and is not shared between goroutines.
type Source interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// Intn returns a number in [0, n). n > 0.
	Intn(n int) int
}

// NewRand returns a seeded Source. Seed 0 is mapped to 1.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	//nolint:gosec // game mechanics, not cryptography
	return rand.New(rand.NewSource(seed))
}

// chance reports whether a draw from rng falls under p.
func chance(rng Source, p float64) bool {
	return rng.Float64() < p
}

// pick returns a uniformly chosen element of candidates.
// candidates must not be empty.
func pick[T any](rng Source, candidates []T) T {
	return candidates[rng.Intn(len(candidates))]
}
