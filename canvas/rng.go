package canvas

import "math/rand"

// Source is the random stream used for crops and offset sampling.
// *math/rand.Rand satisfies it. It is NOT required to be goroutine-safe.
type Source interface {
	// Intn returns a uniform value in [0, n). n > 0.
	Intn(n int) int
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// defaultSeed is the fixed seed used when callers pass seed==0.
const defaultSeed int64 = 1

// NewSource returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultSeed; otherwise the provided seed verbatim.
//
// Complexity: O(1).
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
