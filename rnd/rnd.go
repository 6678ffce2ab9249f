// Package rnd is the single pseudorandom stream of a run. Every random
// decision is made through one Source so that a seed reproduces a run.
package rnd

import (
	"fmt"
	"math/rand"
)

type Source struct {
	seed int64
	rnd  *rand.Rand
}

func New(seed int64) *Source {
	return &Source{seed, rand.New(rand.NewSource(seed))}
}

func (s *Source) Seed() int64 {
	return s.seed
}

// Returns a uniformly distributed integer in [lo, hi] (both inclusive)
func (s *Source) Uniform(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("rnd: empty range [%d, %d]", lo, hi))
	}

	return lo + int(s.rnd.Int63n(int64(hi-lo)+1))
}
