// Package randutil centralises how the engines obtain randomness so that every
// shuffle can be replaced by a deterministic source in tests.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the only randomness the engines need: a uniform integer in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG seeds are derived from the same value so call sites only ever carry
// one seed around.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewTimeSeeded returns a source seeded from the wall clock along with the
// seed that was used, so it can be logged and replayed.
func NewTimeSeeded() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return New(seed), seed
}

// Derive produces an independent child seed, used when one run fans out into
// many games.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Sequence replays a fixed list of values, clamped into range. Once exhausted
// it keeps returning the largest legal index, which makes a Fisher-Yates
// shuffle an identity permutation.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence creates a replay source.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// IntN implements Source.
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.values) {
		return n - 1
	}
	v := s.values[s.pos]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}
