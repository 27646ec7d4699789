// Package rand provides a small seedable random source for animation code.
// It wraps a PCG32 generator so that runs can be reproduced from a seed.
package rand

import (
	"time"

	"github.com/MichaelTJones/pcg"
)

const pcgSequence = 0xda3e39cb94b95bdb

type Rand struct {
	r *pcg.PCG32
}

// New returns a generator seeded with seed. A zero seed is replaced with
// the current time.
func New(seed int64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r.Seed(seed)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), pcgSequence)
}

// Intn returns a uniform value in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}

// Range returns a uniform value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Sign returns +1 or -1 with equal probability.
func (r *Rand) Sign() float64 {
	if r.r.Random()&1 == 0 {
		return 1
	}
	return -1
}
