// Package prng provides the seedable randomness this module's cipher
// internals are built against: uniform bits, uniform permutations, and
// uniform with-replacement sequences.  Nothing in this package is
// cryptographically secure, by design — see spec.md's pedagogical framing.
package prng

import (
	"math/rand"

	"github.com/nkazakov/rotorfeistel/bitstring"
)

// Source is a dependency-injected pseudo-random generator.  Construction
// with an explicit seed makes every caller's output reproducible, which is
// what spec.md §8's determinism property requires; it is never backed by
// the process-global generator.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// NewFromTime returns a Source seeded with nowUnixNano.  It does not read
// the clock itself; passing the current time gives a seed that differs
// from run to run.
func NewFromTime(nowUnixNano int64) *Source {
	return New(nowUnixNano)
}

// Bits returns a uniformly random Bitstring of length n.
func (s *Source) Bits(n int) bitstring.Bitstring {
	out := bitstring.New(n)
	for i := 0; i < n; i++ {
		out.SetBit(i, byte(s.rng.Intn(2)))
	}
	return out
}

// UniformPermutation returns a uniformly random permutation of 0..n-1,
// sampled without replacement.
func (s *Source) UniformPermutation(n int) []int {
	return s.rng.Perm(n)
}

// UniformSequence returns k independent uniform picks from 0..n-1, with
// replacement.  Used for expansion-like tables where duplication is
// expected (spec.md §4.2/§4.3).
func (s *Source) UniformSequence(n, k int) []int {
	out := make([]int, k)
	for i := range out {
		out[i] = s.rng.Intn(n)
	}
	return out
}

// Inverse returns the unique permutation q such that q[p[i]] == i for all i.
// p must itself be a permutation of 0..len(p)-1.
func Inverse(p []int) []int {
	q := make([]int, len(p))
	for i, j := range p {
		q[j] = i
	}
	return q
}
