package rng

import (
	"errors"
	"math"
	"math/rand"
)

// DefaultSeed is the seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// ErrEmptyChoice is returned by Pick when asked to choose from an empty slice.
var ErrEmptyChoice = errors.New("rng: empty choice set")

// Source is a deterministic random stream.
type Source struct {
	r    *rand.Rand
	seed int64
}

// New returns a Source seeded with seed. Policy: seed==0 ⇒ DefaultSeed.
//
// Complexity: O(1).
func New(seed int64) *Source {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Source{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed reports the seed the stream was created with.
func (s *Source) Seed() int64 { return s.seed }

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so neighbouring stream ids do not correlate.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Derive creates an independent stream for the given stream id.
// The parent is advanced once so that reusing a stream id still yields a
// different child. A nil receiver derives from DefaultSeed.
//
// Usage: call during setup (one child per agent or worker), not in hot loops.
func (s *Source) Derive(stream uint64) *Source {
	var parent int64
	if s == nil {
		parent = DefaultSeed
	} else {
		parent = s.r.Int63()
	}
	seed := deriveSeed(parent, stream)
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Source{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Intn returns a uniform int in [0,n). n<=0 yields 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

// Between returns a uniform int in the closed interval [lo,hi].
// If hi<lo, lo is returned.
func (s *Source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// Float64 returns a uniform float in [0,1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Uniform returns a uniform float in [lo,hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// Weight returns a coefficient in {0, 0.01, …, 1.00}.
// Velocity coefficients use two-decimal granularity.
func (s *Source) Weight() float64 {
	return float64(s.r.Intn(101)) / 100
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool { return s.r.Intn(2) == 0 }

// Round rounds f to its floor or its ceiling with equal probability.
// Integral values are returned unchanged.
func (s *Source) Round(f float64) int {
	if s.Bool() {
		return int(math.Ceil(f))
	}
	return int(math.Floor(f))
}

// Shuffle performs an in-place Fisher–Yates shuffle of a.
//
// Complexity: O(n) time, O(1) extra space.
func (s *Source) Shuffle(a []int) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = s.r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Perm returns a uniformly shuffled permutation of 0..n-1.
// n<=0 yields an empty slice.
func (s *Source) Perm(n int) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	s.Shuffle(p)
	return p
}

// Pick returns a uniformly chosen element of v.
func (s *Source) Pick(v []int) (int, error) {
	if len(v) == 0 {
		return 0, ErrEmptyChoice
	}
	return v[s.r.Intn(len(v))], nil
}
