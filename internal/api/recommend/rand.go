package recommend

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source used for shuffles and the weighted tip draw.
// *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a PCG-backed generator. Requests each get their own.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandSource builds the generator for one request.
type RandSource func() Rand

func timeSeededRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// shuffle permutes s in place with Fisher–Yates.
func shuffle[T any](rng Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
