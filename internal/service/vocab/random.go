package vocab

import "math/rand/v2"

// Rand is the random source used by the selection algorithm.
// *rand.Rand from math/rand/v2 satisfies it; tests pass a seeded one.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand delegates to the package-level math/rand/v2 functions, which are
// safe for concurrent use by request handlers.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
